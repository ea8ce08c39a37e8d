package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"momo/internal/diag"
	"momo/internal/project"
	"momo/internal/source"
	"momo/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит собранные модули на диске по хешу исходника и версии компилятора.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached compilation.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path       string
	SourceHash project.Digest
	Compiler   string
	Created    time.Time

	Module []byte
	// Logs are the generator's storage logs, replayed on a hit.
	Logs []CachedLog
}

// CachedLog is one storage log; the span is relative to the cached source.
type CachedLog struct {
	Start   uint32
	End     uint32
	Message string
}

// logRecorder collects storage logs while the generator runs.
type logRecorder struct {
	logs []CachedLog
}

func (r *logRecorder) Report(code diag.Code, _ diag.Severity, primary source.Span, msg string, _ []diag.Note) {
	if code == diag.GenInfo {
		r.logs = append(r.logs, CachedLog{Start: primary.Start, End: primary.End, Message: msg})
	}
}

// replay reports cached logs against file.
func (p *DiskPayload) replay(r diag.Reporter, file *source.File) {
	if r == nil {
		return
	}
	for _, l := range p.Logs {
		r.Report(diag.GenInfo, diag.SevInfo, source.Span{File: file.ID, Start: l.Start, End: l.End}, l.Message, nil)
	}
}

// Valid reports whether the payload was written by this schema and carries a module.
func (p *DiskPayload) Valid() bool {
	return p != nil && p.Schema == diskCacheSchemaVersion && len(p.Module) > 0
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey = H(source || H(compiler version)); the path is not part of the key.
func cacheKey(file *source.File) project.Digest {
	return project.Combine(project.Digest(file.Hash), project.Of(version.Version))
}

func newDiskPayload(file *source.File, module []byte, logs []CachedLog) *DiskPayload {
	return &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Path:       file.Path,
		SourceHash: project.Digest(file.Hash),
		Compiler:   version.Version,
		Created:    time.Now().UTC(),
		Module:     module,
		Logs:       logs,
	}
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки: подкаталог "wasm".
	return filepath.Join(c.dir, "wasm", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
