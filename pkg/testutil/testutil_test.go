package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := CreateFile(t, dir, "nested/events.toml", "events = []")

	assert.Equal(t, filepath.Join(dir, "nested", "events.toml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "events = []", string(data))
}

func TestIsolateEnv(t *testing.T) {
	t.Setenv("EVENTMGR_STRICT_EVENT", "false")

	t.Run("isolated", func(t *testing.T) {
		IsolateEnv(t)
		_, ok := os.LookupEnv("EVENTMGR_STRICT_EVENT")
		assert.False(t, ok)
		assert.NotEmpty(t, os.Getenv("XDG_STATE_HOME"))
	})

	assert.Equal(t, "false", os.Getenv("EVENTMGR_STRICT_EVENT"))
}

func TestRecorder(t *testing.T) {
	var r Recorder
	boom := errors.New("boom")

	require.NoError(t, r.Handler("a")(nil))
	assert.ErrorIs(t, r.Handler("b", boom)(nil), boom)

	fn, ok := r.Methods("welcome").Handler("welcome")
	require.True(t, ok)
	require.NoError(t, fn(nil))

	assert.Equal(t, []string{"a", "b", "welcome"}, r.Calls)
	r.Reset()
	assert.Empty(t, r.Calls)
}
