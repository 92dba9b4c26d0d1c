package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const seedYAML = `
best_times: "Tarde (14h-16h)"
links:
  - house_name: Acme
    link: https://acme.example
    status: active
    bonus: "10%"
  - house_name: Beta
    link: https://beta.example
    status: paused
    id: ignored
`

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	s, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Equal(t, "Tarde (14h-16h)", s.BestTimes)
	require.Len(t, s.Links, 2)

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Acme", entries[0].HouseName)
	require.Equal(t, `"10%"`, string(entries[0].Extra["bonus"]))
	require.NotEqual(t, "ignored", entries[1].ID)
	require.NotContains(t, entries[1].Extra, "id")
	require.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestParseSeed_RequiresCoreFields(t *testing.T) {
	_, err := ParseSeed([]byte("links:\n  - house_name: Acme\n"))
	require.Error(t, err)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
