package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tb2gmail.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
labels:
  case_sensitive: true
  tag_names:
    $label2: Job
  existing: [Work, Receipts/2024]
sieve:
  doveadm_command: [docker, exec, -i, dovecot, doveadm]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Labels.CaseSensitive)
	assert.Equal(t, map[string]string{
		"$label2": "Job",
		"$label3": "Personal",
		"$label4": "Todo",
		"$label5": "Later",
	}, cfg.Labels.TagNames)
	assert.Equal(t, []string{"Work", "Receipts/2024"}, cfg.Labels.Existing)
	assert.Equal(t, []string{"docker", "exec", "-i", "dovecot", "doveadm"}, cfg.Sieve.DoveadmCmd)
	assert.Equal(t, "thunderbird-migrated", cfg.Sieve.ScriptName)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"bad yaml", "logging: [unclosed"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad tag", "labels:\n  tag_names:\n    work: Work\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_SearchFallsBackToDefaults(t *testing.T) {
	if _, err := os.Stat("/etc/tb2gmail.yaml"); err == nil {
		t.Skip("/etc/tb2gmail.yaml exists on this host")
	}
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_SearchFindsWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tb2gmail.yaml"), []byte("logging:\n  level: warn\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
