package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/schedule"
)

// Storage keys.
const (
	DataKey  = "schedule-maker-data"
	ImageKey = "schedule-maker-image"
	ThemeKey = "schedule-maker-theme"
)

// ErrCorruptSnapshot marks a stored document that could not be decoded.
var ErrCorruptSnapshot = errors.New("corrupt schedule snapshot")

type envelope struct {
	Version int `json:"version"`
	schedule.Data
}

// Encode serializes d with the current schema version.
func Encode(d schedule.Data) ([]byte, error) {
	data, err := json.Marshal(envelope{Version: CurrentVersion, Data: d})
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return data, nil
}

// Reconcile builds the working document from a stored snapshot. It always
// returns a usable document; a non-nil error wraps ErrCorruptSnapshot and
// means the snapshot was discarded.
func Reconcile(raw []byte, defaults schedule.Data, today time.Time) (schedule.Data, error) {
	fresh := func() schedule.Data {
		d := defaults.Clone()
		d.StartDate, d.EndDate = schedule.CurrentWeek(today)
		d.Normalize()
		return d
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return fresh(), nil
	}

	doc, err := decodeObject(raw)
	if err != nil {
		return fresh(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := migrate(doc); err != nil {
		return fresh(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	delete(doc, "version")

	merged, err := json.Marshal(doc)
	if err != nil {
		return fresh(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	out := defaults.Clone()
	// Unmarshal merges into existing maps and slice elements; a stored
	// collection replaces the default one whole.
	if _, ok := doc["schedule"]; ok {
		out.Schedule = nil
	}
	if _, ok := doc["timezones"]; ok {
		out.Timezones = nil
	}
	if _, ok := doc["socialMediaHandles"]; ok {
		out.SocialMediaHandles = nil
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return fresh(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	if err := out.SetStartDate(out.StartDate); err != nil {
		out.StartDate, out.EndDate = schedule.CurrentWeek(today)
	}
	out.Normalize()
	return out, nil
}

// LoadSchedule reads DataKey and reconciles it. Errors are informational; the
// returned document is always usable.
func LoadSchedule(ctx context.Context, store kv.Store, defaults schedule.Data, today time.Time) (schedule.Data, error) {
	raw, err := store.Get(ctx, DataKey)
	if errors.Is(err, kv.ErrNotFound) {
		return Reconcile(nil, defaults, today)
	}
	if err != nil {
		d, _ := Reconcile(nil, defaults, today)
		return d, fmt.Errorf("read %s: %w", DataKey, err)
	}
	return Reconcile(raw, defaults, today)
}

// SaveSchedule encodes d and writes it under DataKey.
func SaveSchedule(ctx context.Context, store kv.Store, d schedule.Data) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, DataKey, data); err != nil {
		return fmt.Errorf("write %s: %w", DataKey, err)
	}
	return nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("snapshot is not an object")
	}
	return doc, nil
}
