package localstate

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	state, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, &State{}, state)
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".seafood", "state"))
	state := &State{
		UserID:       7,
		Nickname:     "참치왕",
		LikedPostIDs: "1,2",
	}
	state.RecordView(1, time.Now())
	require.NoError(t, store.Save(state))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, state, loaded)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, ioutil.WriteFile(path, []byte("{nope"), 0600))
	_, err := NewStore(path).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "error parsing state file")
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, store.Delete())
	require.NoError(t, store.Save(&State{UserID: 1}))
	require.NoError(t, store.Delete())
	state, err := store.Load()
	require.NoError(t, err)
	require.False(t, state.LoggedIn())
}
