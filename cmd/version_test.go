package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = "2.3.1", "abc1234"
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	run := func(args ...string) string {
		cmd := NewRootCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	t.Run("detailed output", func(t *testing.T) {
		out := run("version")
		assert.Contains(t, out, "Clipper API")
		assert.Contains(t, out, "Version:      v2.3.1")
		assert.Contains(t, out, "Git Commit:   abc1234")
		assert.Contains(t, out, "OS/Arch:")
	})

	t.Run("short output", func(t *testing.T) {
		assert.Equal(t, "v2.3.1\n", run("version", "--short"))
	})
}

func TestVersionCommandFlags(t *testing.T) {
	versionCmd, _, err := NewRootCmd().Find([]string{"version"})
	require.NoError(t, err)

	shortFlag := versionCmd.Flags().Lookup("short")
	require.NotNil(t, shortFlag)
	assert.Equal(t, "s", shortFlag.Shorthand)
}
