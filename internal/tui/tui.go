package tui

import (
	"context"
	"fmt"
	"strings"

	"calentry/internal/locale"
	"calentry/internal/segfield"
	"calentry/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store store.Store
	// Pattern lays out date fields; empty means the C locale pattern.
	Pattern string
	// Theme is the configured light|dark|auto preference.
	Theme string
}

func Run(ctx context.Context, opts Options) error {
	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		pattern = locale.DefaultPattern
	}
	if _, err := segfield.ParseDatePattern(pattern); err != nil {
		return fmt.Errorf("date pattern: %w", err)
	}

	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(ctx, opts.Store, pattern)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
