package remove

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/core/state"
)

func runRemoveCommand(t *testing.T, storeRoot string, removeArgs ...string) error {
	t.Helper()

	app := &cli.App{
		Name: "bpm-test-remove",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store"},
		},
		Commands: []*cli.Command{
			NewRemoveCommand(),
		},
		Writer:         os.Stderr,
		ErrWriter:      os.Stderr,
		ExitErrHandler: func(context *cli.Context, err error) {},
	}

	cliArgs := []string{"bpm-test-remove", "--store", storeRoot, "remove"}
	cliArgs = append(cliArgs, removeArgs...)
	return app.Run(cliArgs)
}

func TestRemoveCommand_SuccessfulRemoval(t *testing.T) {
	storeRoot := t.TempDir()

	// Seed an installed package with a real binary on disk.
	binPath := filepath.Join(storeRoot, "bins", "alpha")
	require.NoError(t, os.MkdirAll(filepath.Dir(binPath), 0o755))
	require.NoError(t, os.WriteFile(binPath, []byte("alpha"), 0o755))
	require.NoError(t, state.Mutate(storeRoot, func(st *state.Store) error {
		st.Insert("alpha", state.Record{Repo: "main", Version: "1.0", Binaries: []string{binPath}})
		return nil
	}))

	err := runRemoveCommand(t, storeRoot, "alpha")
	require.NoError(t, err)

	st, err := state.Snapshot(storeRoot)
	require.NoError(t, err)
	assert.False(t, st.Contains("alpha"))

	_, err = os.Stat(binPath)
	assert.True(t, os.IsNotExist(err), "binary should be deleted")
}

func TestRemoveCommand_NotInstalled(t *testing.T) {
	err := runRemoveCommand(t, t.TempDir(), "ghost")
	assert.NoError(t, err, "removing a package that is not installed is a no-op success")
}

func TestRemoveCommand_MissingArgument(t *testing.T) {
	err := runRemoveCommand(t, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 1, err.(cli.ExitCoder).ExitCode())
}
