// Package jsonstore is a single-file key-value backend. The file is a JSON
// object keyed by slot name, readable and editable by hand.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	tmpSuffix       = ".tmp"
	backupSuffix    = ".bak"
	corruptSuffix   = ".corrupt"
	filePermissions = 0o600
)

// Store keeps every slot in memory and rewrites the whole file on each set.
type Store struct {
	mu        sync.Mutex
	path      string
	values    map[string]json.RawMessage
	recovered string
}

// Open loads path. A missing file starts empty. A file that is not a JSON
// object is moved aside (see RecoveredFrom) and the store starts empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]json.RawMessage{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.values); err != nil {
		aside := path + corruptSuffix
		if rerr := os.Rename(path, aside); rerr != nil {
			return nil, fmt.Errorf("json unmarshal: %w (and move aside: %v)", err, rerr)
		}
		s.values = map[string]json.RawMessage{}
		s.recovered = aside
	}
	return s, nil
}

// RecoveredFrom names the file an unreadable store was moved to, if any.
func (s *Store) RecoveredFrom() string {
	return s.recovered
}

func (s *Store) Path() string {
	return s.path
}

// GetSetting returns the stored text for key. JSON values come back verbatim;
// string values come back unquoted.
func (s *Store) GetSetting(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	if !ok {
		return "", false
	}
	var str string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &str) == nil {
		return str, true
	}
	return string(raw), true
}

// SetSetting stores value, embedding it as JSON when it parses as such.
func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = encodeValue(value)
	if err := s.saveLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	return nil
}

func encodeValue(value string) json.RawMessage {
	trimmed := bytes.TrimSpace([]byte(value))
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(value)
	return quoted
}

// saveLocked writes a temp file and renames it over the target, keeping the
// previous version as a .bak file.
func (s *Store) saveLocked() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	tmp := s.path + tmpSuffix
	if err := os.WriteFile(tmp, b, filePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		// best effort
		_ = copyFile(s.path, s.path+backupSuffix)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, filePermissions)
}
