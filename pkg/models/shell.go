package models

import "sync"

// MountHandle is the opaque reference to the visual node created for a shell by a surface
type MountHandle any

// Painter swaps the content displayed by a mounted node
type Painter interface {
	Paint(handle MountHandle, asset *Asset)
}

// Shell is the rendered visual node of one descriptor, waiting for or displaying its asset.
// Shells are never recycled: once mounted they stay mounted for the lifetime of the gallery.
type Shell struct {
	Descriptor Descriptor
	Index      int // Index is the position of the descriptor in its sequence

	mu       sync.RWMutex
	mount    MountHandle
	painter  Painter
	state    LoadState
	attempts int
	asset    *Asset
}

func NewShell(descriptor Descriptor, index int) *Shell {
	return &Shell{
		Descriptor: descriptor,
		Index:      index,
		state:      LoadPending,
	}
}

// Attach records the node created for the shell and the painter able to update it
func (s *Shell) Attach(painter Painter, handle MountHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.painter = painter
	s.mount = handle
}

func (s *Shell) GetID() string {
	return s.Descriptor.ID
}

func (s *Shell) GetLocator() string {
	return s.Descriptor.Locator
}

func (s *Shell) GetMount() MountHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mount
}

func (s *Shell) GetState() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Shell) GetAttempts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attempts
}

func (s *Shell) GetAsset() *Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asset
}

// BeginAttempt moves the shell to LoadLoading and counts one more attempt.
// It returns the zero-based index of the attempt, or false if the shell is in a
// terminal state or already used retryLimit+1 attempts.
func (s *Shell) BeginAttempt(retryLimit int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsTerminal() || s.attempts > retryLimit {
		return s.attempts, false
	}

	s.state = LoadLoading
	s.attempts++

	return s.attempts - 1, true
}

// Resolve displays asset and moves the shell to LoadLoaded
func (s *Shell) Resolve(asset *Asset) bool {
	return s.finish(LoadLoaded, asset)
}

// Exhaust displays the placeholder permanently and moves the shell to LoadExhausted
func (s *Shell) Exhaust(placeholder *Asset) bool {
	return s.finish(LoadExhausted, placeholder)
}

func (s *Shell) finish(state LoadState, asset *Asset) bool {
	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return false
	}
	s.state = state
	s.asset = asset
	painter, mount := s.painter, s.mount
	s.mu.Unlock()

	if painter != nil {
		painter.Paint(mount, asset)
	}

	return true
}
