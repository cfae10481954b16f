// Package trie implements CLI commands for inspecting and mutating a stored
// trie.
package trie

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/statelayer/statetrie/cli/options"
	"github.com/statelayer/statetrie/pkg/mpt"
	"github.com/statelayer/statetrie/pkg/storage"
	"github.com/statelayer/statetrie/pkg/util"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// latestRootName is the store entry the current trie root digest is kept
// under.
const latestRootName = "latest"

var rootFlag = &cli.StringFlag{
	Name:    "root",
	Aliases: []string{"r"},
	Usage:   "state root digest to operate on (defaults to the latest stored root)",
}

var nodesFlag = &cli.BoolFlag{
	Name:  "nodes",
	Usage: "dump raw trie node records from the backing store instead of key-value pairs",
}

// NewCommands returns trie-related commands.
func NewCommands() []*cli.Command {
	cfgFlags := []cli.Flag{options.Config, options.Debug}
	rootFlags := append([]cli.Flag{rootFlag}, cfgFlags...)
	return []*cli.Command{
		{
			Name:      "root",
			Usage:     "Print the latest stored state root",
			UsageText: "statetrie root [--config-file file]",
			Action:    printRoot,
			Flags:     cfgFlags,
		},
		{
			Name:      "get",
			Usage:     "Print the value stored under a key",
			UsageText: "statetrie get [--root hash] [--config-file file] <hex-key>",
			Action:    getValue,
			Flags:     rootFlags,
		},
		{
			Name:      "delete",
			Usage:     "Delete keys from the trie and store the new version",
			UsageText: "statetrie delete [--root hash] [--config-file file] <hex-key>...",
			Action:    deleteKeys,
			Flags:     rootFlags,
		},
		{
			Name:      "dump",
			Usage:     "Dump all key-value pairs of the trie as JSON",
			UsageText: "statetrie dump [--root hash] [--nodes] [--config-file file]",
			Action:    dumpPairs,
			Flags:     append([]cli.Flag{nodesFlag}, rootFlags...),
		},
		{
			Name:      "check",
			Usage:     "Validate the structure of the stored trie",
			UsageText: "statetrie check [--root hash] [--config-file file]",
			Action:    checkTrie,
			Flags:     rootFlags,
		},
	}
}

// initTrieStore opens the backing store from the configuration in ctx. The
// store is wrapped into a write-back cache, mutating commands have to call
// Persist to propagate their writes.
func initTrieStore(ctx *cli.Context) (*mpt.TrieStore, *storage.MemCachedStore, *zap.Logger, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.Logger)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("can't initialize storage: %w", err)
	}
	log.Debug("storage initialized", zap.String("type", cfg.Storage.Type))
	cached := storage.NewMemCachedStore(store)
	return mpt.NewTrieStore(cached), cached, log, nil
}

// resolveRoot returns the digest from the --root flag, falling back to the
// latest stored root.
func resolveRoot(ctx *cli.Context, ts *mpt.TrieStore) (util.Uint256, error) {
	if s := ctx.String("root"); s != "" {
		return util.Uint256DecodeString(s)
	}
	return ts.GetRoot(latestRootName)
}

// loadTrie reconstructs the trie selected by ctx into a fresh arena.
func loadTrie(ctx *cli.Context, ts *mpt.TrieStore) (*mpt.Trie, error) {
	h, err := resolveRoot(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("can't resolve state root: %w", err)
	}
	a := mpt.NewArena()
	p, err := ts.Load(a, h)
	if err != nil {
		return nil, fmt.Errorf("can't load trie %s: %w", h, err)
	}
	return mpt.NewTrie(a, p), nil
}

func printRoot(ctx *cli.Context) error {
	ts, store, _, err := initTrieStore(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	h, err := ts.GetRoot(latestRootName)
	if err != nil {
		return cli.Exit(fmt.Errorf("no stored state root: %w", err), 1)
	}
	fmt.Fprintln(ctx.App.Writer, h.String())
	return nil
}

func getValue(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("a single hex-encoded key is required", 1)
	}
	key, err := hex.DecodeString(ctx.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Errorf("invalid key: %w", err), 1)
	}

	ts, store, _, err := initTrieStore(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	tr, err := loadTrie(ctx, ts)
	if err != nil {
		return cli.Exit(err, 1)
	}
	value, err := tr.Get(key)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(value))
	return nil
}

func deleteKeys(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.Exit("at least one hex-encoded key is required", 1)
	}
	keys := make([][]byte, ctx.NArg())
	for i := range keys {
		key, err := hex.DecodeString(ctx.Args().Get(i))
		if err != nil {
			return cli.Exit(fmt.Errorf("invalid key #%d: %w", i, err), 1)
		}
		keys[i] = key
	}

	ts, store, log, err := initTrieStore(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	tr, err := loadTrie(ctx, ts)
	if err != nil {
		return cli.Exit(err, 1)
	}
	oldRoot := tr.StateRoot()
	for _, key := range keys {
		if err := tr.Delete(key); err != nil {
			return cli.Exit(fmt.Errorf("can't delete %x: %w", key, err), 1)
		}
		log.Debug("key deleted", zap.String("key", hex.EncodeToString(key)))
	}
	if err := tr.Validate(); err != nil {
		return cli.Exit(fmt.Errorf("trie is broken after delete: %w", err), 1)
	}

	n, err := ts.Flush(tr.Arena(), tr.Root())
	if err != nil {
		return cli.Exit(fmt.Errorf("can't flush trie: %w", err), 1)
	}
	if err := ts.PutRoot(latestRootName, tr.StateRoot()); err != nil {
		return cli.Exit(fmt.Errorf("can't store new root: %w", err), 1)
	}
	if _, err := store.Persist(); err != nil {
		return cli.Exit(fmt.Errorf("can't persist trie: %w", err), 1)
	}
	log.Info("trie updated",
		zap.Stringer("oldroot", oldRoot),
		zap.Stringer("newroot", tr.StateRoot()),
		zap.Int("nodes", n))
	fmt.Fprintln(ctx.App.Writer, tr.StateRoot().String())
	return nil
}

// KVPair represents a key-value pair.
type KVPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TraverseTrie streams every key-value pair of tr into the encoder.
func TraverseTrie(tr *mpt.Trie, encoder *json.Encoder) error {
	var encErr error
	tr.Walk(func(k, v []byte) bool {
		kvPair := KVPair{
			Key:   hex.EncodeToString(k),
			Value: hex.EncodeToString(v),
		}
		if encErr = encoder.Encode(kvPair); encErr != nil {
			return false
		}
		return true
	})
	return encErr
}

// dumpStoreNodes streams every node record of the store in ascending key
// order, covering all stored trie versions at once.
func dumpStoreNodes(store storage.Store, encoder *json.Encoder) error {
	var encErr error
	store.Seek(storage.DataMPT.Bytes(), func(k, v []byte) bool {
		kvPair := KVPair{
			Key:   hex.EncodeToString(k),
			Value: hex.EncodeToString(v),
		}
		encErr = encoder.Encode(kvPair)
		return encErr == nil
	})
	return encErr
}

func dumpPairs(ctx *cli.Context) error {
	ts, store, _, err := initTrieStore(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	if ctx.Bool("nodes") {
		if err := dumpStoreNodes(store, json.NewEncoder(ctx.App.Writer)); err != nil {
			return cli.Exit(fmt.Errorf("can't dump node records: %w", err), 1)
		}
		return nil
	}

	tr, err := loadTrie(ctx, ts)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := TraverseTrie(tr, json.NewEncoder(ctx.App.Writer)); err != nil {
		return cli.Exit(fmt.Errorf("can't dump trie: %w", err), 1)
	}
	return nil
}

func checkTrie(ctx *cli.Context) error {
	ts, store, log, err := initTrieStore(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	tr, err := loadTrie(ctx, ts)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := tr.Validate(); err != nil {
		return cli.Exit(fmt.Errorf("trie is broken: %w", err), 1)
	}
	log.Info("trie is valid", zap.Stringer("root", tr.StateRoot()))
	return nil
}
