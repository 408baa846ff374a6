package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vitos/crypto_gainers/internal/domain"
	"go.uber.org/zap"
)

// Storage keys for the four persisted entries.
const (
	keyCurrent    = "gainers.current"
	keyPrevious   = "gainers.previous"
	keyCurrentTS  = "gainers.current_ts"
	keyPreviousTS = "gainers.previous_ts"
)

// ErrRefreshInFlight is returned when a refresh is requested while another
// one is still awaiting the exchange. Requests are rejected, not queued.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// RefreshResult is what one completed refresh cycle hands to callers and
// render listeners. FetchErr is set when the current snapshot is empty
// because the market-data call failed, so an empty overlap can be told apart
// from a genuine no-overlap.
type RefreshResult struct {
	Current  domain.Snapshot
	Previous domain.Snapshot
	Overlap  map[string]struct{}
	FetchErr error
}

// TrackerService owns the current and previous snapshot slots. It is the
// single writer of that state: refreshes are serialized by an in-flight
// guard, and the slots are only ever replaced wholesale.
type TrackerService struct {
	ranker *RankerService
	store  domain.KeyValueStore
	logger *zap.Logger

	mu       sync.Mutex
	current  domain.Snapshot
	previous domain.Snapshot

	refreshing atomic.Bool

	listenerMu sync.Mutex
	listeners  []func(RefreshResult)

	timeNow func() time.Time
}

func NewTrackerService(ranker *RankerService, store domain.KeyValueStore, logger *zap.Logger) *TrackerService {
	return &TrackerService{
		ranker:  ranker,
		store:   store,
		logger:  logger,
		timeNow: time.Now,
	}
}

// Subscribe registers a render listener invoked after every completed
// refresh. Listeners run on the refreshing goroutine.
func (t *TrackerService) Subscribe(fn func(RefreshResult)) {
	t.listenerMu.Lock()
	t.listeners = append(t.listeners, fn)
	t.listenerMu.Unlock()
}

// Restore loads both snapshot slots and their timestamps from the store.
// Missing keys leave the slots empty; a first run starts from nothing.
func (t *TrackerService) Restore(ctx context.Context) error {
	current, err := t.loadSnapshot(ctx, keyCurrent, keyCurrentTS)
	if err != nil {
		return err
	}
	previous, err := t.loadSnapshot(ctx, keyPrevious, keyPreviousTS)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.current = current
	t.previous = previous
	t.mu.Unlock()

	t.logger.Info("Restored tracker state",
		zap.Int("current_entries", len(current.Entries)),
		zap.Int("previous_entries", len(previous.Entries)))
	return nil
}

// Refresh runs one cycle: shift current into previous, fetch a new ranking,
// persist both slots, compute the overlap and notify listeners. A failed
// fetch degrades to an empty current snapshot; the failure is carried in the
// result, never returned as the refresh error.
func (t *TrackerService) Refresh(ctx context.Context) (RefreshResult, error) {
	if !t.refreshing.CompareAndSwap(false, true) {
		return RefreshResult{}, ErrRefreshInFlight
	}
	defer t.refreshing.Store(false)

	// Capture time is the moment the cycle started, not response receipt.
	capturedAt := t.timeNow()

	entries, fetchErr := t.ranker.TopGainers(ctx)
	if fetchErr != nil {
		t.logger.Error("Top gainers fetch failed, degrading to empty snapshot", zap.Error(fetchErr))
		entries = nil
	}

	t.mu.Lock()
	t.previous = t.current
	t.current = domain.NewSnapshot(entries, capturedAt)
	current, previous := t.current, t.previous
	t.mu.Unlock()

	if err := t.persist(ctx, current, previous); err != nil {
		t.logger.Error("Failed to persist snapshots", zap.Error(err))
	}

	res := RefreshResult{
		Current:  current,
		Previous: previous,
		Overlap:  domain.Overlap(current, previous),
		FetchErr: fetchErr,
	}
	t.notify(res)
	return res, nil
}

// Snapshots returns the slots as of the last completed refresh.
func (t *TrackerService) Snapshots() (current, previous domain.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.previous
}

func (t *TrackerService) notify(res RefreshResult) {
	t.listenerMu.Lock()
	listeners := make([]func(RefreshResult), len(t.listeners))
	copy(listeners, t.listeners)
	t.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(res)
	}
}

func (t *TrackerService) persist(ctx context.Context, current, previous domain.Snapshot) error {
	if err := t.saveSnapshot(ctx, keyCurrent, keyCurrentTS, current); err != nil {
		return err
	}
	return t.saveSnapshot(ctx, keyPrevious, keyPreviousTS, previous)
}

func (t *TrackerService) saveSnapshot(ctx context.Context, key, tsKey string, snap domain.Snapshot) error {
	data, err := json.Marshal(snap.Entries)
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, key, string(data)); err != nil {
		return err
	}
	return t.store.Set(ctx, tsKey, snap.CapturedAt.Format(time.RFC3339))
}

func (t *TrackerService) loadSnapshot(ctx context.Context, key, tsKey string) (domain.Snapshot, error) {
	raw, found, err := t.store.Get(ctx, key)
	if err != nil || !found {
		return domain.Snapshot{}, err
	}

	var entries []domain.GainerEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.logger.Warn("Discarding unreadable stored snapshot", zap.String("key", key), zap.Error(err))
		return domain.Snapshot{}, nil
	}

	var capturedAt time.Time
	if rawTS, ok, err := t.store.Get(ctx, tsKey); err == nil && ok {
		if ts, err := time.Parse(time.RFC3339, rawTS); err == nil {
			capturedAt = ts
		}
	}
	return domain.NewSnapshot(entries, capturedAt), nil
}
