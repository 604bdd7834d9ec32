// Package filestore persists session fields to a JSON file so a CLI session
// survives process restarts.
package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/spf13/afero"
)

var _ sessions.Store = (*FileStore)(nil)

// FileStore writes the whole snapshot on every mutation via a temp file and rename
type FileStore struct {
	fs     afero.Fs
	path   string
	values map[string]string
	lock   sync.RWMutex
}

type StoreOption func(*FileStore)

// WithFs swaps the filesystem, typically for afero.NewMemMapFs in tests
func WithFs(fs afero.Fs) StoreOption {
	return func(f *FileStore) {
		f.fs = fs
	}
}

// New loads the snapshot at path. A missing file is an empty session.
func New(path string, options ...StoreOption) (*FileStore, error) {
	f := &FileStore{
		fs:     afero.NewOsFs(),
		path:   path,
		values: make(map[string]string),
	}
	for _, opt := range options {
		opt(f)
	}
	if err := f.load(); err != nil {
		return nil, errors.Wrapf(err, "[filestore New] load %s", path)
	}
	return f, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	previous, existed := f.values[key]
	f.values[key] = value
	if err := f.save(); err != nil {
		if existed {
			f.values[key] = previous
		} else {
			delete(f.values, key)
		}
		return errors.Wrapf(err, "[filestore Set] %s", key)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, keys ...string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	removed := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := f.values[key]; ok {
			removed[key] = value
			delete(f.values, key)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := f.save(); err != nil {
		for key, value := range removed {
			f.values[key] = value
		}
		return errors.Wrapf(err, "[filestore Delete]")
	}
	return nil
}

type fileSnapshot struct {
	Values map[string]string `json:"values"`
}

func (f *FileStore) save() error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileSnapshot{Values: f.values}, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err = afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		return err
	}
	return f.fs.Rename(tmp, f.path)
}

func (f *FileStore) load() error {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return err
	}
	for k, v := range snap.Values {
		f.values[k] = v
	}
	return nil
}
