package compilation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"jaotc/internal/mapper"
)

// diskCacheSchemaVersion guards against stale entries after a change to
// CachedClass's shape — bump it whenever that struct's fields change.
// Bumped from 1 to 2 when InstanceLayoutID/StaticLayoutID (raw
// ir.TypeID arena slots, meaningless against any Interner but the one
// that produced them) were replaced with mapper.LayoutRecipe values
// replayable against any Interner; schema-1 entries are rejected by
// Get rather than misread as layouts they no longer describe.
const diskCacheSchemaVersion uint16 = 2

// Digest is a content hash of one class's descriptor bytes, used as the
// disk cache key (spec.md §5's addition: "a small on-disk
// layout/trampoline cache keyed by SHA-256 of class descriptor bytes").
type Digest [32]byte

// HashClassBytes computes the Digest for the raw classfile bytes of one
// class, matching the teacher's internal/project.Combine's use of
// crypto/sha256 for content-addressed cache keys.
func HashClassBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

func (d Digest) hex() string { return hex.EncodeToString(d[:]) }

// CachedClass is the on-disk payload for one class's cached
// layout/trampoline computation. InstanceLayout/StaticLayout are
// replayable recipes rather than resolved ir.TypeIDs: every Compile
// call builds a fresh ir.Interner, so a cache hit must rebuild its
// types via mapper.ReplayLayout against that Interner, not reuse a
// slot number from whichever Interner produced them originally.
type CachedClass struct {
	Schema         uint16
	ClassName      string
	InstanceLayout mapper.LayoutRecipe
	StaticLayout   mapper.LayoutRecipe
	Trampolines    []CachedTrampoline
}

// CachedTrampoline is the flattened, serializable form of a
// trampoline.Trampoline tuple.
type CachedTrampoline struct {
	Kind             uint8
	CallingClass     string
	TargetClass      string
	MemberName       string
	MemberDescriptor string
	Static           bool
}

// DiskCache stores CachedClass payloads on disk, keyed by Digest.
// Grounded on the teacher's internal/driver.DiskCache: mutex-guarded,
// msgpack-encoded, atomic rename-into-place writes.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache returns a DiskCache rooted at dir, creating it if
// necessary.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, key.hex()+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *DiskCache) Put(key Digest, payload *CachedClass) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and deserializes the payload stored under key, reporting
// false (no error) if absent or from a stale schema version.
func (c *DiskCache) Get(key Digest) (*CachedClass, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedClass
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}
