package trie_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/statelayer/statetrie/cli/app"
	"github.com/statelayer/statetrie/cli/trie"
	"github.com/statelayer/statetrie/pkg/mpt"
	"github.com/statelayer/statetrie/pkg/storage"
	"github.com/statelayer/statetrie/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// newTestEnv seeds a BoltDB store with a small trie and returns the config
// file path along with the stored state root.
func newTestEnv(t *testing.T) (string, util.Uint256) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "trie.bolt")

	store, err := storage.NewBoltDBStore(storage.BoltDBOptions{FilePath: dbPath})
	require.NoError(t, err)

	a := mpt.NewArena()
	b := mpt.NewBranchNode()
	b.Children[0] = a.Append(mpt.NewLeafNode([]byte{0x01}, []byte{0xAB, 0xCD}))
	b.Children[9] = a.Append(mpt.NewLeafNode([]byte{0x09}, []byte{0x22, 0x22}))
	b.Children[10] = a.Append(mpt.NewLeafNode([]byte{0x0E}, []byte("hello")))
	bp := a.Append(b)
	tr := mpt.NewTrie(a, a.Append(mpt.NewExtensionNode([]byte{0x0A, 0x0C}, bp)))

	ts := mpt.NewTrieStore(store)
	_, err = ts.Flush(a, tr.Root())
	require.NoError(t, err)
	require.NoError(t, ts.PutRoot("latest", tr.StateRoot()))
	require.NoError(t, store.Close())

	cfgPath := filepath.Join(dir, "config.yml")
	cfg := fmt.Sprintf("Storage:\n  Type: boltdb\n  BoltDBOptions:\n    FilePath: %s\n", dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, tr.StateRoot()
}

func runApp(t *testing.T, args ...string) (string, error) {
	oldExiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = oldExiter })

	ctl := app.New()
	b := &bytes.Buffer{}
	ctl.Writer = b
	ctl.ErrWriter = b
	err := ctl.Run(append([]string{"statetrie"}, args...))
	return b.String(), err
}

func TestCLIRoot(t *testing.T) {
	cfgPath, root := newTestEnv(t)

	out, err := runApp(t, "root", "--config-file", cfgPath)
	require.NoError(t, err)
	require.Equal(t, root.String(), strings.TrimSpace(out))
}

func TestCLIGet(t *testing.T) {
	cfgPath, root := newTestEnv(t)

	out, err := runApp(t, "get", "--config-file", cfgPath, "ac01")
	require.NoError(t, err)
	require.Equal(t, "abcd", strings.TrimSpace(out))

	t.Run("explicit root", func(t *testing.T) {
		out, err := runApp(t, "get", "--config-file", cfgPath, "--root", root.String(), "ac99")
		require.NoError(t, err)
		require.Equal(t, "2222", strings.TrimSpace(out))
	})
	t.Run("missing key", func(t *testing.T) {
		_, err := runApp(t, "get", "--config-file", cfgPath, "ac21")
		require.Error(t, err)
	})
	t.Run("bad key", func(t *testing.T) {
		_, err := runApp(t, "get", "--config-file", cfgPath, "zz")
		require.Error(t, err)
	})
}

func TestCLIDelete(t *testing.T) {
	cfgPath, oldRoot := newTestEnv(t)

	out, err := runApp(t, "delete", "--config-file", cfgPath, "ac01")
	require.NoError(t, err)
	newRoot := strings.TrimSpace(out)
	require.NotEqual(t, oldRoot.String(), newRoot)

	_, err = runApp(t, "get", "--config-file", cfgPath, "ac01")
	require.Error(t, err)

	// the old version is still stored and readable
	out, err = runApp(t, "get", "--config-file", cfgPath, "--root", oldRoot.String(), "ac01")
	require.NoError(t, err)
	require.Equal(t, "abcd", strings.TrimSpace(out))

	t.Run("missing key", func(t *testing.T) {
		_, err := runApp(t, "delete", "--config-file", cfgPath, "ac01")
		require.Error(t, err)
	})
}

func TestCLIDump(t *testing.T) {
	cfgPath, _ := newTestEnv(t)

	out, err := runApp(t, "dump", "--config-file", cfgPath)
	require.NoError(t, err)

	var pairs []trie.KVPair
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var kv trie.KVPair
		require.NoError(t, dec.Decode(&kv))
		pairs = append(pairs, kv)
	}
	require.Equal(t, []trie.KVPair{
		{Key: "ac01", Value: "abcd"},
		{Key: "ac99", Value: "2222"},
		{Key: "acae", Value: "68656c6c6f"},
	}, pairs)

	t.Run("nodes", func(t *testing.T) {
		out, err := runApp(t, "dump", "--config-file", cfgPath, "--nodes")
		require.NoError(t, err)

		var records []trie.KVPair
		dec := json.NewDecoder(strings.NewReader(out))
		for dec.More() {
			var kv trie.KVPair
			require.NoError(t, dec.Decode(&kv))
			records = append(records, kv)
		}
		// 3 leaves, a branch and an extension
		require.Len(t, records, 5)
		for _, kv := range records {
			// prefix byte plus a 32-byte digest
			require.Len(t, kv.Key, 66)
			require.True(t, strings.HasPrefix(kv.Key, "03"))
			require.NotEmpty(t, kv.Value)
		}
	})
}

func TestCLICheck(t *testing.T) {
	cfgPath, _ := newTestEnv(t)

	_, err := runApp(t, "check", "--config-file", cfgPath)
	require.NoError(t, err)
}
