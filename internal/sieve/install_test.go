package sieve

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoveadm records its arguments in dir/calls and the uploaded script in
// dir/script.
func fakeDoveadm(t *testing.T, dir string) []string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := `echo "$*" >> "` + filepath.Join(dir, "calls") + `"
if [ "$1 $2" = "sieve put" ]; then cat > "` + filepath.Join(dir, "script") + `"; fi`
	return []string{"sh", "-c", script, "doveadm"}
}

func TestInstaller_Install(t *testing.T) {
	dir := t.TempDir()
	in := &Installer{Command: fakeDoveadm(t, dir), ScriptName: "thunderbird-migrated"}
	s := SieveScript{Name: "all", Requires: []string{"fileinto"}, Body: "# body\n"}

	require.NoError(t, in.Install(context.Background(), "chris@example.com", s))

	calls, err := os.ReadFile(filepath.Join(dir, "calls"))
	require.NoError(t, err)
	assert.Equal(t, "user -u chris@example.com\n"+
		"sieve put -u chris@example.com thunderbird-migrated\n"+
		"sieve activate -u chris@example.com thunderbird-migrated\n", string(calls))

	uploaded, err := os.ReadFile(filepath.Join(dir, "script"))
	require.NoError(t, err)
	assert.Equal(t, s.Content(), string(uploaded))
}

func TestInstaller_UnknownUser(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	in := &Installer{Command: []string{"sh", "-c", "exit 67", "doveadm"}}

	err := in.Install(context.Background(), "nobody@example.com", SieveScript{Name: "x"})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestInstaller_EmptyCommand(t *testing.T) {
	err := (&Installer{}).Install(context.Background(), "a@b.c", SieveScript{})
	assert.Error(t, err)
}
