package flow

import "sync"

// LoginPath is where a tab lands after signing out.
const LoginPath = "/login"

// Navigator moves a tab between pages.
type Navigator interface {
	Navigate(path string)
	Current() string
}

// Location is the current path of one tab.
type Location struct {
	mu       sync.RWMutex
	path     string
	onChange func(path string)
}

// NewLocation returns a Location at path. onChange, if set, is called after
// every navigation.
func NewLocation(path string, onChange func(path string)) *Location {
	return &Location{path: path, onChange: onChange}
}

func (l *Location) Navigate(path string) {
	l.mu.Lock()
	l.path = path
	l.mu.Unlock()

	if l.onChange != nil {
		l.onChange(path)
	}
}

func (l *Location) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}
