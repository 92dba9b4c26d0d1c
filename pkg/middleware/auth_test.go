package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	valid string
	seen  string
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) error {
	f.seen = raw
	if raw != f.valid {
		return errors.New("bad token")
	}
	return nil
}

func newAuthRouter(ver TokenVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AdminAuth(ver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": c.GetString(AdminTokenKey)})
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, `{"message":"Authorization token is missing!"}`},
		{"no scheme", "secret", http.StatusForbidden, `{"message":"Invalid or expired token!"}`},
		{"wrong scheme", "Basic secret", http.StatusForbidden, `{"message":"Invalid or expired token!"}`},
		{"extra part", "Bearer secret extra", http.StatusForbidden, `{"message":"Invalid or expired token!"}`},
		{"empty token", "Bearer ", http.StatusForbidden, `{"message":"Invalid or expired token!"}`},
		{"wrong token", "Bearer nope", http.StatusForbidden, `{"message":"Invalid or expired token!"}`},
		{"valid", "Bearer secret", http.StatusOK, `{"token":"secret"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(&fakeVerifier{valid: "secret"})
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.code, w.Code)
			require.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestAdminAuth_PassesRawToken(t *testing.T) {
	ver := &fakeVerifier{valid: "abc.def.ghi"}
	r := newAuthRouter(ver)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "abc.def.ghi", ver.seen)
}
