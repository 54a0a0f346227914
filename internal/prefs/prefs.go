// Package prefs stores small per-session UI preferences such as the dark
// mode flag. Values are loaded once when a page is built and saved whenever
// the user changes them.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const KeyDarkMode = "dark_mode"

var ErrEmptyScope = errors.New("empty preference scope")

// Store is a scope-keyed key/value preference store.
type Store interface {
	Get(ctx context.Context, scope, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope, key, value string) error
}

// LoadDarkMode returns the saved flag for scope, or fallback when none is
// saved or the saved value is unreadable.
func LoadDarkMode(ctx context.Context, s Store, scope string, fallback bool) (bool, error) {
	v, ok, err := s.Get(ctx, scope, KeyDarkMode)
	if err != nil {
		return fallback, fmt.Errorf("load dark mode: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, nil
	}
	return on, nil
}

func SaveDarkMode(ctx context.Context, s Store, scope string, on bool) error {
	if err := s.Set(ctx, scope, KeyDarkMode, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the flag and returns the new value.
func ToggleDarkMode(ctx context.Context, s Store, scope string, fallback bool) (bool, error) {
	on, err := LoadDarkMode(ctx, s, scope, fallback)
	if err != nil {
		return fallback, err
	}
	on = !on
	return on, SaveDarkMode(ctx, s, scope, on)
}

// Memory keeps preferences for the lifetime of the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, scope, key string) (string, bool, error) {
	if strings.TrimSpace(scope) == "" {
		return "", false, ErrEmptyScope
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[scope][key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, scope, key, value string) error {
	if strings.TrimSpace(scope) == "" {
		return ErrEmptyScope
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[scope] == nil {
		m.values[scope] = make(map[string]string)
	}
	m.values[scope][key] = value
	return nil
}
