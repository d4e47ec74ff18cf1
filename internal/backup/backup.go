// Package backup writes and restores full JSON snapshots of a plan,
// optionally encrypted with a passphrase.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
)

var (
	ErrPassphraseRequired = errors.New("backup is encrypted; passphrase required")
	ErrDecrypt            = errors.New("cannot decrypt backup (wrong passphrase or damaged file)")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrInvalidBackup      = errors.New("not a timeplan backup")
)

// Snapshot is the plain backup document.
type Snapshot struct {
	Version    int                `json:"version"`
	App        string             `json:"app"`
	ExportedAt string             `json:"exportedAt"`
	Settings   models.Settings    `json:"settings"`
	Milestones []models.Milestone `json:"milestones"`
}

// Source is what a snapshot is taken from.
type Source interface {
	Milestones() []models.Milestone
	Settings() models.Settings
}

// Target receives a restored snapshot.
type Target interface {
	ReplaceAll(ctx context.Context, milestones []models.Milestone, settings models.Settings) error
}

// Take captures the current plan.
func Take(src Source, now time.Time) Snapshot {
	ms := src.Milestones()
	if ms == nil {
		ms = []models.Milestone{}
	}
	return Snapshot{
		Version:    config.BackupVersion,
		App:        config.AppName,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Settings:   src.Settings(),
		Milestones: ms,
	}
}

// Encode serializes snap, encrypting it when passphrase is non-empty.
func Encode(snap Snapshot, passphrase string) ([]byte, error) {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if passphrase == "" {
		return payload, nil
	}
	return encrypt(payload, passphrase)
}

// Decode parses data, decrypting it first if it is an encrypted envelope.
func Decode(data []byte, passphrase string) (Snapshot, error) {
	if IsEncrypted(data) {
		if passphrase == "" {
			return Snapshot{}, ErrPassphraseRequired
		}
		plain, err := decrypt(data, passphrase)
		if err != nil {
			return Snapshot{}, err
		}
		data = plain
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if snap.Version == 0 && snap.App == "" {
		return Snapshot{}, ErrInvalidBackup
	}
	if snap.Version > config.BackupVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	if err := snap.Settings.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if snap.Milestones == nil {
		snap.Milestones = []models.Milestone{}
	}
	return snap, nil
}

// Restore replaces the target's plan with snap.
func Restore(ctx context.Context, dst Target, snap Snapshot) error {
	return dst.ReplaceAll(ctx, snap.Milestones, snap.Settings)
}

// FileName is the default name for a backup made at now.
func FileName(now time.Time, encrypted bool) string {
	name := config.BackupFilePrefix + now.Format("20060102_150405")
	if encrypted {
		return name + ".enc.json"
	}
	return name + ".json"
}

// Save writes snap into dir and returns the file path.
func Save(dir string, snap Snapshot, passphrase string, now time.Time) (string, error) {
	data, err := Encode(snap, passphrase)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now, passphrase != ""))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Load reads and decodes the backup at path.
func Load(path, passphrase string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read backup: %w", err)
	}
	return Decode(data, passphrase)
}
