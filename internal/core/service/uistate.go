package service

import "sync"

// A UIState is the shared presentation context for one application
// session. It carries the side-menu flag only; no business logic.
type UIState struct {
	mu           sync.Mutex
	sideMenuOpen bool
}

func NewUIState() *UIState {
	return &UIState{}
}

// ToggleSideMenu flips the side-menu flag and returns the new value.
func (u *UIState) ToggleSideMenu() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sideMenuOpen = !u.sideMenuOpen
	return u.sideMenuOpen
}

func (u *UIState) SideMenuOpen() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sideMenuOpen
}
