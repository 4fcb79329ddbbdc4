package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/state"
)

// DefaultDebounce is the quiet period before an edit is written.
const DefaultDebounce = 500 * time.Millisecond

const writeTimeout = 5 * time.Second

// Saver writes the latest scheduled document once edits go quiet.
type Saver struct {
	store  kv.Store
	status *state.Store
	delay  time.Duration

	mu      sync.Mutex
	pending *schedule.Data
	kick    chan struct{}

	writeMu sync.Mutex
}

// NewSaver builds a Saver. A non-positive delay uses DefaultDebounce.
func NewSaver(store kv.Store, status *state.Store, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if status == nil {
		status = &state.Store{}
	}
	return &Saver{
		store:  store,
		status: status,
		delay:  delay,
		kick:   make(chan struct{}, 1),
	}
}

// Schedule replaces the pending document and restarts the quiet window.
func (s *Saver) Schedule(d schedule.Data) {
	c := d.Clone()
	s.mu.Lock()
	s.pending = &c
	s.mu.Unlock()
	s.status.MarkPending()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Start launches the debounce loop. It returns immediately.
func (s *Saver) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Saver) run(ctx context.Context) {
	timer := time.NewTimer(s.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.kick:
			timer.Reset(s.delay)
		case <-timer.C:
			_ = s.Flush(ctx)
		}
	}
}

// Flush writes the pending document now. It is a no-op when nothing is
// pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	d := s.pending
	s.pending = nil
	s.mu.Unlock()
	if d == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	err := SaveSchedule(ctx, s.store, *d)
	s.status.Update(err)
	if err != nil {
		log.Error().Err(err).Str("key", DataKey).Msg("schedule save failed")
		if errors.Is(err, kv.ErrQuotaExceeded) && s.status.WarnQuota() {
			log.Warn().Str("key", DataKey).Msg("storage quota exceeded; changes may not persist")
		}
		return err
	}
	log.Debug().Str("key", DataKey).Str("week", d.StartDate).Msg("schedule saved")
	return nil
}

// Status returns the save status store.
func (s *Saver) Status() *state.Store {
	return s.status
}
