package tui

type ModalType int

const (
	ModalNone ModalType = iota
	ModalForm
	ModalPopover
	ModalConfirmDelete
	ModalStartYear
	ModalMove
)

type ModalState interface {
	Type() ModalType
}

// FormState backs the create/edit dialog. EditingID is empty when creating.
type FormState struct {
	EditingID string
	Focus     int
	MarkerIdx int
	Err       string
}

func (s *FormState) Type() ModalType { return ModalForm }

type PopoverState struct {
	ID     string
	Cursor int
}

func (s *PopoverState) Type() ModalType { return ModalPopover }

type ConfirmDeleteState struct {
	ID string
}

func (s *ConfirmDeleteState) Type() ModalType { return ModalConfirmDelete }

type StartYearState struct{}

func (s *StartYearState) Type() ModalType { return ModalStartYear }

// MoveState tracks the ghost column while a milestone is being dragged.
// Column is a timeline pixel and may run left of the window.
type MoveState struct {
	ID     string
	Column int
}

func (s *MoveState) Type() ModalType { return ModalMove }

// ModalManager tracks the single open modal.
type ModalManager struct {
	current ModalState
}

func (m *ModalManager) Open(state ModalState) { m.current = state }
func (m *ModalManager) Close()                { m.current = nil }
func (m *ModalManager) IsOpen() bool          { return m.current != nil }

func (m *ModalManager) Active() ModalType {
	if m.current == nil {
		return ModalNone
	}
	return m.current.Type()
}

func (m *ModalManager) Form() (*FormState, bool) {
	s, ok := m.current.(*FormState)
	return s, ok
}

func (m *ModalManager) Popover() (*PopoverState, bool) {
	s, ok := m.current.(*PopoverState)
	return s, ok
}

func (m *ModalManager) ConfirmDelete() (*ConfirmDeleteState, bool) {
	s, ok := m.current.(*ConfirmDeleteState)
	return s, ok
}

func (m *ModalManager) Move() (*MoveState, bool) {
	s, ok := m.current.(*MoveState)
	return s, ok
}

// InInputMode reports whether keys go to a text input rather than the
// registry. Move mode takes raw keys but is not text input.
func (m *ModalManager) InInputMode() bool {
	switch m.Active() {
	case ModalForm, ModalStartYear:
		return true
	}
	return false
}
