package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store guarda o token e o usuário da sessão.
type Store interface {
	SaveToken(token string) error
	Token() string
	RemoveToken() error
	HasToken() bool

	SaveUser(user *User) error
	User() *User
	RemoveUser() error

	SaveAuthData(token string, user *User) error
	Clear() error
	IsLoggedIn() bool
}

// MemoryStore mantém a sessão apenas enquanto o processo vive.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) RemoveToken() error {
	return s.SaveToken("")
}

func (s *MemoryStore) HasToken() bool {
	return s.Token() != ""
}

func (s *MemoryStore) SaveUser(user *User) error {
	s.mu.Lock()
	s.user = copyUser(user)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

func (s *MemoryStore) RemoveUser() error {
	return s.SaveUser(nil)
}

func (s *MemoryStore) SaveAuthData(token string, user *User) error {
	s.mu.Lock()
	s.token = token
	s.user = copyUser(user)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.SaveAuthData("", nil)
}

func (s *MemoryStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// FileStore persiste a sessão em um arquivo JSON (0600).
// Conteúdo corrompido é lido como sessão vazia.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileSession struct {
	Token string          `json:"auth_token,omitempty"`
	User  json.RawMessage `json:"auth_user,omitempty"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) read() fileSession {
	var sess fileSession
	data, err := os.ReadFile(s.path)
	if err != nil {
		return sess
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return fileSession{}
	}
	return sess
}

func (s *FileStore) write(sess fileSession) error {
	if sess.Token == "" && len(sess.User) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) update(fn func(*fileSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.read()
	if err := fn(&sess); err != nil {
		return err
	}
	return s.write(sess)
}

func (s *FileStore) SaveToken(token string) error {
	return s.update(func(sess *fileSession) error {
		sess.Token = token
		return nil
	})
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Token
}

func (s *FileStore) RemoveToken() error {
	return s.SaveToken("")
}

func (s *FileStore) HasToken() bool {
	return s.Token() != ""
}

func (s *FileStore) SaveUser(user *User) error {
	return s.update(func(sess *fileSession) error {
		return setUser(sess, user)
	})
}

func (s *FileStore) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeUser(s.read().User)
}

func (s *FileStore) RemoveUser() error {
	return s.SaveUser(nil)
}

func (s *FileStore) SaveAuthData(token string, user *User) error {
	return s.update(func(sess *fileSession) error {
		sess.Token = token
		return setUser(sess, user)
	})
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(fileSession{})
}

func (s *FileStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.read()
	return sess.Token != "" && decodeUser(sess.User) != nil
}

func setUser(sess *fileSession, user *User) error {
	if user == nil {
		sess.User = nil
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.User = raw
	return nil
}

func decodeUser(raw json.RawMessage) *User {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
