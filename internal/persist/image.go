package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/five82/streamcard/internal/kv"
)

// Image size ceilings. Anything larger is used for the session but not saved.
const (
	MaxImageFileSize   = 5 << 20
	MaxImageRecordSize = 9 << 19 // 4.5 MiB
)

var (
	// ErrImageTooLarge means the image works for this session only.
	ErrImageTooLarge = errors.New("image too large to persist")
	// ErrCorruptImage marks an unreadable ImageKey record.
	ErrCorruptImage = errors.New("corrupt saved image")
)

// ImageRecord is the last uploaded image as stored under ImageKey.
type ImageRecord struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SaveImage writes rec under ImageKey when it fits both ceilings.
func SaveImage(ctx context.Context, store kv.Store, rec ImageRecord) error {
	if rec.Size > MaxImageFileSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, rec.Name, rec.Size)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode image record: %w", err)
	}
	if len(data) > MaxImageRecordSize {
		return fmt.Errorf("%w: encoded record is %d bytes", ErrImageTooLarge, len(data))
	}
	if err := store.Set(ctx, ImageKey, data); err != nil {
		return fmt.Errorf("write %s: %w", ImageKey, err)
	}
	return nil
}

// LoadImage reads the saved image. kv.ErrNotFound is returned unwrapped when
// nothing was saved.
func LoadImage(ctx context.Context, store kv.Store) (ImageRecord, error) {
	raw, err := store.Get(ctx, ImageKey)
	if err != nil {
		return ImageRecord{}, err
	}
	var rec ImageRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ImageRecord{}, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if rec.Data == "" {
		return ImageRecord{}, fmt.Errorf("%w: empty data", ErrCorruptImage)
	}
	return rec, nil
}

// ClearImage forgets the saved image.
func ClearImage(ctx context.Context, store kv.Store) error {
	if err := store.Remove(ctx, ImageKey); err != nil {
		return fmt.Errorf("remove %s: %w", ImageKey, err)
	}
	return nil
}
