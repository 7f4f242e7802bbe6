package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"

	"github.com/aipo-io/cli/internal/models"
	"github.com/sirupsen/logrus"
)

const storageVersion = 0

var ErrCorruptSession = errors.New("persisted session is corrupt")

// Storage is durable storage for the persisted session subset.
type Storage interface {
	// Load returns the persisted session. An absent session yields an empty
	// PersistedSession and no error.
	Load() (models.PersistedSession, error)
	Save(models.PersistedSession) error
	Clear() error
}

// DefaultSessionPath is the directory the session file lives in.
func DefaultSessionPath() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".config", "aipo"), nil
}

// FileStorage keeps the session as a JSON blob in
// <dir>/<models.SessionStorageKey>.json. There is no cross-process locking;
// the last writer wins.
type FileStorage struct {
	lock sync.Mutex // Ensure thread-safe access
	dir  string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Path is the session file location.
func (m *FileStorage) Path() string {
	return filepath.Join(m.dir, models.SessionStorageKey+".json")
}

func (m *FileStorage) Load() (models.PersistedSession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	data, err := os.ReadFile(m.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.PersistedSession{}, nil
		}
		return models.PersistedSession{}, err
	}

	return decodeEnvelope(data)
}

func (m *FileStorage) Save(state models.PersistedSession) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"path":            m.Path(),
		"isAuthenticated": state.IsAuthenticated,
		"hasToken":        state.Token != nil,
	}).Debugln("Persisting session")

	file, err := m.openSessionFile()
	if err != nil {
		return err
	}
	defer file.Close()

	// Truncate the file to ensure clean write
	if err := file.Truncate(0); err != nil {
		return err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return json.NewEncoder(file).Encode(models.PersistedEnvelope{
		State:   state,
		Version: storageVersion,
	})
}

func (m *FileStorage) Clear() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	logrus.WithField("path", m.Path()).Debugln("Removing persisted session")

	err := os.Remove(m.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (m *FileStorage) openSessionFile() (*os.File, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(m.dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	// Only allow read/write access to the owner
	file, err := os.OpenFile(m.Path(), os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	return file, nil
}

func decodeEnvelope(data []byte) (models.PersistedSession, error) {
	if len(data) == 0 {
		return models.PersistedSession{}, nil
	}

	var envelope models.PersistedEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return models.PersistedSession{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return envelope.State, nil
}

// MemoryStorage holds the encoded session in memory. It encodes on every
// save so it behaves like durable storage.
type MemoryStorage struct {
	lock sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (models.PersistedSession, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return decodeEnvelope(m.data)
}

func (m *MemoryStorage) Save(state models.PersistedSession) error {
	data, err := json.Marshal(models.PersistedEnvelope{
		State:   state,
		Version: storageVersion,
	})
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.data = data
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data = nil
	return nil
}

// SetRaw replaces the stored bytes as-is.
func (m *MemoryStorage) SetRaw(data []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data = data
}
