// Package session persists authenticated user records between runs so a
// restart keeps chats signed in. One JSON file holds the record per chat;
// a file that fails to parse is removed and treated as logged out.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/models"
)

// Store reads and writes the session file.
type Store struct {
	path   string
	logger *logrus.Logger
}

// NewStore creates a session store backed by the file at path.
func NewStore(path string, logger *logrus.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads all persisted sessions. A missing file means no sessions; a
// corrupted file is removed and also means no sessions.
func (s *Store) Load() (map[int64]*models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int64]*models.User{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	raw := map[string]*models.User{}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warnf("Removing corrupted session file %s: %v", s.path, err)
		os.Remove(s.path)
		return map[int64]*models.User{}, nil
	}

	sessions := make(map[int64]*models.User, len(raw))
	for key, user := range raw {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		sessions[chatID] = user
	}
	return sessions, nil
}

// Save records one chat's authenticated user.
func (s *Store) Save(chatID int64, user *models.User) error {
	sessions, err := s.Load()
	if err != nil {
		return err
	}
	sessions[chatID] = user
	return s.write(sessions)
}

// Clear removes one chat's session, a no-op when none exists.
func (s *Store) Clear(chatID int64) error {
	sessions, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := sessions[chatID]; !ok {
		return nil
	}
	delete(sessions, chatID)
	return s.write(sessions)
}

func (s *Store) write(sessions map[int64]*models.User) error {
	raw := make(map[string]*models.User, len(sessions))
	for chatID, user := range sessions {
		raw[strconv.FormatInt(chatID, 10)] = user
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
