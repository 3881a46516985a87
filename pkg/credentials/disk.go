package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/kubev2v/migration-discovery/internal/models"
)

const (
	credentialsFileName = "credentials.enc"
	keyFileName         = "credentials.key"
	keySize             = 32
)

// DiskStore keeps the credentials in {dataFolder}/credentials.enc, sealed with
// AES-256-GCM. The key is generated on first save into {dataFolder}/credentials.key.
// Both files are readable by the owner only.
type DiskStore struct {
	dataFolder string
	mu         sync.RWMutex
}

func NewDiskStore(dataFolder string) *DiskStore {
	return &DiskStore{dataFolder: dataFolder}
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.dataFolder, name)
}

func (s *DiskStore) Save(cfg models.AdapterConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dataFolder, 0o700); err != nil {
		return err
	}

	key, err := s.key(true)
	if err != nil {
		return err
	}

	stored, err := s.load(key)
	switch {
	case err == nil:
		cfg = cfg.Merge(*stored)
	case errors.Is(err, ErrNotFound):
	default:
		return err
	}

	plain, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	sealed, err := seal(key, plain)
	if err != nil {
		return err
	}

	return writeFileAtomic(s.path(credentialsFileName), sealed)
}

func (s *DiskStore) Load() (*models.AdapterConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, err := s.key(false)
	if err != nil {
		return nil, err
	}
	return s.load(key)
}

func (s *DiskStore) load(key []byte) (*models.AdapterConfig, error) {
	sealed, err := os.ReadFile(s.path(credentialsFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	plain, err := open(key, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var cfg models.AdapterConfig
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Delete removes the credentials. The key is kept.
func (s *DiskStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(credentialsFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path(credentialsFileName))
	return err == nil
}

// key reads the key file. A missing key is generated when create is set and
// reported as ErrNotFound otherwise.
func (s *DiskStore) key(create bool) ([]byte, error) {
	key, err := os.ReadFile(s.path(keyFileName))
	switch {
	case err == nil:
		if len(key) != keySize {
			return nil, fmt.Errorf("credentials key has %d bytes, expected %d", len(key), keySize)
		}
		return key, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	case !create:
		return nil, ErrNotFound
	}

	key = make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate credentials key: %w", err)
	}
	if err := writeFileAtomic(s.path(keyFileName), key); err != nil {
		return nil, err
	}
	return key, nil
}

// seal returns the nonce followed by the ciphertext.
func seal(key, plain []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(key, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
