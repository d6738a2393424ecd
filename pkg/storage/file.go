package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// File implements Adapter on top of a single JSON document on disk.
// The document is reloaded on every read so separate processes sharing the
// same path observe each other's writes. Writes go through a temp file and
// rename, so a crash never leaves a truncated document behind.
type File struct {
	mu   sync.Mutex
	path string
	opts *options
}

// NewFile creates a file-backed adapter. The file and its parent directory
// are created lazily on first write.
func NewFile(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, ErrEmptyFilePath
	}
	return &File{path: path, opts: newOptions(opts)}, nil
}

// Path returns the location of the backing document.
func (f *File) Path() string {
	return f.path
}

func (f *File) Read(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := f.load()
	v, ok := doc[namespaced(f.opts.namespace, key)]
	return v, ok
}

func (f *File) Write(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := f.load()
	doc[namespaced(f.opts.namespace, key)] = value
	f.store(doc)
}

func (f *File) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := f.load()
	k := namespaced(f.opts.namespace, key)
	if _, ok := doc[k]; !ok {
		return
	}
	delete(doc, k)
	f.store(doc)
}

// load never fails: unreadable or corrupt documents read as empty.
func (f *File) load() map[string]string {
	doc := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.opts.logger.Warn("storage file unreadable",
				slog.String("path", f.path),
				slog.String("error", err.Error()))
		}
		return doc
	}
	if len(data) == 0 {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		f.opts.logger.Warn("storage file corrupt, treating as empty",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return make(map[string]string)
	}
	return doc
}

func (f *File) store(doc map[string]string) {
	if err := f.writeAtomic(doc); err != nil {
		f.opts.logger.Warn("storage file write dropped",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
	}
}

func (f *File) writeAtomic(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}
