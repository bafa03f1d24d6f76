package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lockweak/internal/expand"
)

// diskCacheSchemaVersion растёт при любой смене DiskPayload.
const diskCacheSchemaVersion uint16 = 1

const entrySuffix = ".mp"

// DiskCache хранит результаты раскрытия чистых файлов по ключу содержимого.
// Безопасен для параллельных прогонов ExpandDir.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached expansion. Only files without diagnostics are
// cached, so no spans need to survive a round trip.
type DiskPayload struct {
	Schema  uint16       `msgpack:"schema"`
	Path    string       `msgpack:"path"`
	Output  []byte       `msgpack:"output"`
	Changed bool         `msgpack:"changed"`
	Stats   expand.Stats `msgpack:"stats"`
}

// OpenDiskCache opens the per-user cache: os.UserCacheDir()/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return NewDiskCache(filepath.Join(base, app))
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) root() string { return filepath.Join(c.dir, "expand") }

// pathFor: expand/ab/abcdef....mp, по два символа на подкаталог.
func (c *DiskCache) pathFor(key Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.root(), name[:2], name+entrySuffix)
}

// Put кодирует payload во временный файл и переименовывает его на место.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return writeAtomic(p, buf.Bytes())
}

// Get reports a miss for an absent entry or one of another schema.
// A corrupt entry is a miss with an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// CacheInfo: what `lockweak cache info` prints.
type CacheInfo struct {
	Entries int
	Bytes   int64
}

func (c *DiskCache) Info() (CacheInfo, error) {
	var info CacheInfo
	if c == nil {
		return info, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	err := filepath.WalkDir(c.root(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, entrySuffix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		info.Entries++
		info.Bytes += st.Size()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return CacheInfo{}, nil
	}
	return info, err
}

// DropAll removes every entry. The cache stays usable afterwards.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.root()); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
