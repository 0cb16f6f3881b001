package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core/user"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store persists a Session between runs.
type Store interface {
	// Load returns the persisted session. A missing, partial or corrupted
	// record is cleared and reported as a zero Session, never as an error.
	Load() Session
	Save(s Session) error
	Clear() error
}

// FileStore keeps the token and the user profile in two files under dir,
// mirroring how browsers keep them under separate storage keys.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Load() Session {
	token, err := os.ReadFile(filepath.Join(fs.dir, tokenFile))
	if err != nil {
		_ = fs.Clear()
		return Session{}
	}

	raw, err := os.ReadFile(filepath.Join(fs.dir, userFile))
	if err != nil {
		_ = fs.Clear()
		return Session{}
	}
	var usr user.User
	if err = json.Unmarshal(raw, &usr); err != nil {
		_ = fs.Clear()
		return Session{}
	}

	s := Session{Token: string(token), User: &usr}
	if s.Token == "" || usr.ID == "" {
		_ = fs.Clear()
		return Session{}
	}
	return s
}

func (fs *FileStore) Save(s Session) error {
	raw, err := json.Marshal(s.User)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}
	if err = os.WriteFile(filepath.Join(fs.dir, tokenFile), []byte(s.Token), 0o600); err != nil {
		return errors.Wrap(err, "writing token")
	}
	if err = os.WriteFile(filepath.Join(fs.dir, userFile), raw, 0o600); err != nil {
		return errors.Wrap(err, "writing user")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	var first error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(fs.dir, name)); err != nil && !os.IsNotExist(err) && first == nil {
			first = errors.Wrap(err, "removing "+name)
		}
	}
	return first
}

// MemStore is an in-memory Store.
type MemStore struct {
	mutex sync.Mutex
	s     Session
	set   bool
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore { return &MemStore{} }

func (ms *MemStore) Load() Session {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	if !ms.set || ms.s.Token == "" || ms.s.User == nil {
		ms.s = Session{}
		ms.set = false
		return Session{}
	}
	return ms.s
}

func (ms *MemStore) Save(s Session) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.s = s
	ms.set = true
	return nil
}

func (ms *MemStore) Clear() error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.s = Session{}
	ms.set = false
	return nil
}
