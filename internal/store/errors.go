package store

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/timeplan/internal/models"
)

var (
	ErrDuplicateID     = errors.New("milestone id already exists")
	ErrNotFound        = errors.New("milestone not found")
	ErrInvalidSettings = models.ErrInvalidSettings
)

type OpError struct {
	Op       string
	Resource string
	ID       string
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapMilestoneErr(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "milestone", ID: id, Err: err}
}

func wrapSettingsErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "settings", Err: err}
}
