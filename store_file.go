package purse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

const (
	usersDir        = "users"
	sessionFilename = "session.json"
)

// FileStore is a Store keeping one JSON document per user under
// <dir>/users/<user id>.json and the session pointer in <dir>/session.json.
//
// Documents are written to a temporary file first and renamed over the
// previous one, so a reader never sees a partial write.
type FileStore struct {
	dir string
	mu  sync.Mutex // serializes writes within the process
}

// NewFileStore opens (creating it if needed) a store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, usersDir), 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store root.
func (f *FileStore) Dir() string { return f.dir }

// userPath escapes the user id so that it is a single file name.
func (f *FileStore) userPath(userID string) string {
	return filepath.Join(f.dir, usersDir, url.PathEscape(userID)+".json")
}

func (f *FileStore) Load(_ context.Context, userID string) (UserState, error) {
	if err := checkUserID("load", userID); err != nil {
		return UserState{}, err
	}
	data, err := os.ReadFile(f.userPath(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return SeedState(userID), nil
	}
	if err != nil {
		return UserState{}, &PersistenceError{Op: "load", UserID: userID, Err: err}
	}
	var s UserState
	if err := json.Unmarshal(data, &s); err != nil {
		return UserState{}, &PersistenceError{Op: "load", UserID: userID, Err: fmt.Errorf("could not decode %q: %w", f.userPath(userID), err)}
	}
	return s, nil
}

func (f *FileStore) Save(_ context.Context, userID string, s UserState) error {
	if err := checkUserID("save", userID); err != nil {
		return err
	}
	if err := f.writeJSON(f.userPath(userID), s); err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Err: err}
	}
	return nil
}

func (f *FileStore) Begin(_ context.Context, p SessionPointer) error {
	if err := checkUserID("begin", p.UserID); err != nil {
		return err
	}
	if err := f.writeJSON(filepath.Join(f.dir, sessionFilename), p); err != nil {
		return &PersistenceError{Op: "begin", UserID: p.UserID, Err: err}
	}
	return nil
}

func (f *FileStore) Current(context.Context) (SessionPointer, bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, sessionFilename))
	if errors.Is(err, fs.ErrNotExist) {
		return SessionPointer{}, false, nil
	}
	if err != nil {
		return SessionPointer{}, false, &PersistenceError{Op: "current", Err: err}
	}
	var p SessionPointer
	if err := json.Unmarshal(data, &p); err != nil {
		return SessionPointer{}, false, &PersistenceError{Op: "current", Err: err}
	}
	return p, true, nil
}

func (f *FileStore) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok, err := f.Current(ctx)
	if err != nil || !ok || p.UserID != userID {
		return err
	}
	if err := os.Remove(filepath.Join(f.dir, sessionFilename)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Op: "clear", UserID: userID, Err: err}
	}
	return nil
}

// writeJSON atomically replaces path with the JSON encoding of v.
func (f *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed
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
	return os.Rename(tmp.Name(), path)
}
