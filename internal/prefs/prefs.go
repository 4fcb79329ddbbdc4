// Package prefs handles the display theme preference. It is stored as JSON
// under its own key in the same kv.Store as the schedule.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/five82/streamcard/internal/kv"
)

// Key is the storage key for preferences.
const Key = "schedule-maker-theme"

// Prefs holds the user's card theme choice.
type Prefs struct {
	ThemeID  string `json:"themeId"`
	DarkMode bool   `json:"isDarkMode"`
}

const defaultThemeID = "default"

// Defaults returns the preferences of a first run.
func Defaults() Prefs {
	return Prefs{ThemeID: defaultThemeID}
}

// Load reads preferences from store, falling back to defaults on any failure.
func Load(ctx context.Context, store kv.Store) Prefs {
	if store == nil {
		return Defaults()
	}
	raw, err := store.Get(ctx, Key)
	if err != nil {
		return Defaults() // Graceful degradation
	}

	p := Defaults()
	if err := json.Unmarshal(raw, &p); err != nil {
		return Defaults() // Graceful degradation
	}
	if strings.TrimSpace(p.ThemeID) == "" {
		p.ThemeID = defaultThemeID
	}
	return p
}

// Save writes preferences to store.
func Save(ctx context.Context, store kv.Store, p Prefs) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := store.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
