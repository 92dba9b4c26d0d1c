package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *dashboard.Document {
	doc := dashboard.NewDocument(dashboard.AdminCredentials{Username: "admin", Password: "pw"}, []dashboard.LinkEntry{
		{ID: "l1", HouseName: "Acme", Link: "http://x", Status: "active", Extra: map[string]json.RawMessage{"bonus": json.RawMessage(`"10%"`)}},
	})
	doc.DailyData.RecommendedLinkID = dashboard.StringPtr("l1")
	return doc
}

func TestMemoryRepo(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	_, err := r.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	doc := sampleDoc()
	require.NoError(t, r.Save(ctx, doc))
	require.Equal(t, 1, r.Saves())

	// mutating the caller's copy must not leak into the store
	doc.ScratchLinks[0].HouseName = "changed"
	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.ScratchLinks[0].HouseName)
}

func TestFileRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	r := NewFileRepo(path)
	ctx := context.Background()

	_, err := r.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Save(ctx, sampleDoc()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "{\n    \""), "expected 4-space indentation, got %q", string(raw[:20]))

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	require.Contains(t, top, "scratch_links")
	require.Contains(t, top, "daily_data")
	require.Contains(t, top, "admin_credentials")

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.ScratchLinks, 1)
	require.Equal(t, `"10%"`, string(got.ScratchLinks[0].Extra["bonus"]))
	require.Equal(t, "l1", *got.DailyData.RecommendedLinkID)
	require.NoError(t, r.Ping(ctx))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileRepo_NullLinksNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scratch_links":null,"daily_data":{},"admin_credentials":{}}`), 0o644))
	got, err := NewFileRepo(path).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.ScratchLinks)
	require.Empty(t, got.ScratchLinks)
}

func TestFileRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scratch_links": [`), 0o644))
	_, err := NewFileRepo(path).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
