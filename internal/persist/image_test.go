package persist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/five82/streamcard/internal/kv"
)

func newStore(t *testing.T) *kv.FileStore {
	t.Helper()
	s, err := kv.NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestImageRecord_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	if _, err := LoadImage(ctx, store); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("LoadImage empty = %v, want ErrNotFound", err)
	}

	rec := ImageRecord{
		Name:       "bg.png",
		Type:       "image/png",
		Size:       4,
		Data:       "data:image/png;base64,AAAA",
		UploadedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := SaveImage(ctx, store, rec); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	got, err := LoadImage(ctx, store)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got != rec {
		t.Fatalf("LoadImage = %+v, want %+v", got, rec)
	}

	if err := ClearImage(ctx, store); err != nil {
		t.Fatalf("ClearImage: %v", err)
	}
	if _, err := LoadImage(ctx, store); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("LoadImage after clear = %v", err)
	}
}

func TestSaveImage_Ceilings(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	err := SaveImage(ctx, store, ImageRecord{Name: "huge.png", Size: MaxImageFileSize + 1, Data: "data:,"})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("file ceiling: err = %v, want ErrImageTooLarge", err)
	}

	big := "data:image/png;base64," + strings.Repeat("A", MaxImageRecordSize)
	err = SaveImage(ctx, store, ImageRecord{Name: "big.png", Size: 1024, Data: big})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("record ceiling: err = %v, want ErrImageTooLarge", err)
	}
	if _, err := LoadImage(ctx, store); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("oversized image was stored: %v", err)
	}
}

func TestLoadImage_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_ = store.Set(ctx, ImageKey, []byte(`{"name":"x"`))

	if _, err := LoadImage(ctx, store); !errors.Is(err, ErrCorruptImage) {
		t.Fatalf("LoadImage = %v, want ErrCorruptImage", err)
	}
	_ = store.Set(ctx, ImageKey, []byte(`{"name":"x","data":""}`))
	if _, err := LoadImage(ctx, store); !errors.Is(err, ErrCorruptImage) {
		t.Fatalf("LoadImage empty data = %v, want ErrCorruptImage", err)
	}
}
