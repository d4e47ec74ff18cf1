package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
)

// Format identifies an export artifact type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want xlsx or pdf)", s)
}

// Write renders the plan in format f to out.
func Write(out io.Writer, f Format, ms []models.Milestone, s models.Settings) error {
	switch f {
	case FormatXLSX:
		return WriteWorkbook(out, ms, s)
	case FormatPDF:
		return WritePDF(out, ms, s)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// FileName is the default name for an export made at now.
func FileName(f Format, now time.Time) string {
	return config.ExportFilePrefix + now.Format("20060102_150405") + "." + string(f)
}

// WriteFile renders to a temp file next to path and renames it into place.
func WriteFile(path string, f Format, ms []models.Milestone, s models.Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpName := tmp.Name()
	if err := Write(tmp, f, ms, s); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace export file: %w", err)
	}
	return nil
}

// Save writes to dir under a timestamped name and returns the path.
func Save(dir string, f Format, ms []models.Milestone, s models.Settings, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(f, now))
	if err := WriteFile(path, f, ms, s); err != nil {
		return "", err
	}
	return path, nil
}
