package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Page file names inside the static directory.
const (
	PublicPage = "public-dashboard.html"
	AdminPage  = "admin-panel.html"
)

// RegisterPages serves the two HTML pages from dir.
func RegisterPages(rg gin.IRouter, dir string) {
	rg.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(dir, PublicPage))
	})
	rg.GET("/admin", func(c *gin.Context) {
		c.File(filepath.Join(dir, AdminPage))
	})
}
