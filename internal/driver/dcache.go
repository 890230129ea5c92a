package driver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"glsles/internal/diag"
	"glsles/internal/extract"
	"glsles/internal/project"
	"glsles/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит таблицы деклараций по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached analysis: the table and the diagnostics that
// produced it. Spans are stored without their FileID and rebound on load.
type DiskPayload struct {
	Schema uint16

	Path       string
	Version    int
	Extensions []extract.Extension
	Entries    []extract.Entry
	Precisions []extract.DefaultPrecision

	Diagnostics []CachedDiagnostic
	Incomplete  bool
}

// CachedDiagnostic is a diagnostic with file-relative offsets.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache).
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

// OpenDiskCacheAt opens the cache in dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "tables", key.String()+".mp")
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
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a payload of another schema is
// a miss, not an error.
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
	defer f.Close() //nolint:errcheck

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey covers the content and every option that changes the output.
func cacheKey(file *source.File, opts Options) project.Digest {
	var buf [11]byte
	binary.LittleEndian.PutUint16(buf[0:], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(buf[2:], uint64(max(opts.MaxDiagnostics, 0))) // #nosec G115 -- clamped
	if opts.RequireMain {
		buf[10] = 1
	}
	return project.Combine(project.Digest(file.Hash), buf[:])
}

func newPayload(res *Result) *DiskPayload {
	p := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Path:       res.File.Path,
		Version:    res.Table.Version,
		Extensions: res.Table.Extensions,
		Entries:    res.Table.Entries(),
		Precisions: res.Table.Precisions(),
		Incomplete: res.Incomplete,
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore rebuilds the table and diagnostics for file.
func (p *DiskPayload) restore(file source.FileID, bag *diag.Bag) *extract.Table {
	entries := make([]extract.Entry, len(p.Entries))
	for i, e := range p.Entries {
		e.Span.File = file
		e.NameSpan.File = file
		e.Type = rebindType(e.Type, file)
		entries[i] = e
	}
	table := extract.Restore(entries, p.Precisions)
	table.Version = p.Version
	table.Extensions = p.Extensions

	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
	return table
}

func rebindType(t extract.TypeDesc, file source.FileID) extract.TypeDesc {
	if len(t.Fields) > 0 {
		fields := make([]extract.Field, len(t.Fields))
		for i, f := range t.Fields {
			f.Span.File = file
			f.Type = rebindType(f.Type, file)
			fields[i] = f
		}
		t.Fields = fields
	}
	if len(t.Params) > 0 {
		params := make([]extract.Param, len(t.Params))
		for i, prm := range t.Params {
			prm.Type = rebindType(prm.Type, file)
			params[i] = prm
		}
		t.Params = params
	}
	if t.Return != nil {
		ret := rebindType(*t.Return, file)
		t.Return = &ret
	}
	return t
}
