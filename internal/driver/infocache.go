package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachedInfo changes
const infoCacheSchemaVersion uint16 = 1

// InfoCache remembers the Info of driver binaries on disk, so resolving a
// toolchain does not start every driver again. Entries are keyed by path,
// size and modification time of the binary.
// Thread-safe for concurrent access.
type InfoCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedInfo struct {
	Schema uint16
	Path   string
	Info   Info
}

// OpenInfoCache initializes a cache below $XDG_CACHE_HOME/<app>.
func OpenInfoCache(app string) (*InfoCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewInfoCache(filepath.Join(base, app))
}

// NewInfoCache uses dir as cache directory.
func NewInfoCache(dir string) (*InfoCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &InfoCache{dir: dir}, nil
}

func (c *InfoCache) pathFor(driver string) (string, error) {
	st, err := os.Stat(driver)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(driver))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(st.Size(), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(st.ModTime().UnixNano(), 10)))
	return filepath.Join(c.dir, "drivers", hex.EncodeToString(h.Sum(nil))+".mp"), nil
}

// Put stores info for the driver at path.
func (c *InfoCache) Put(driver string, info Info) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.pathFor(driver)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&cachedInfo{Schema: infoCacheSchemaVersion, Path: driver, Info: info}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get returns the cached info of the driver at path. A changed binary or
// an entry of an older schema is a miss.
func (c *InfoCache) Get(driver string) (Info, bool, error) {
	if c == nil {
		return Info{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, err := c.pathFor(driver)
	if err != nil {
		return Info{}, false, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, false, nil
		}
		return Info{}, false, err
	}
	defer f.Close()

	var entry cachedInfo
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return Info{}, false, err
	}
	if entry.Schema != infoCacheSchemaVersion || entry.Path != driver {
		return Info{}, false, nil
	}
	return entry.Info, true, nil
}

// DropAll removes every entry.
func (c *InfoCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "drivers"))
}
