package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grocersmart/backend/internal/domain"
)

// DefaultDebounceDelay is the quiet period before a typed query is searched
const DefaultDebounceDelay = 500 * time.Millisecond

// SearchFunc runs one product search
type SearchFunc func(ctx context.Context, query string) ([]domain.Product, error)

// DebouncedResult is a search response tagged with the request generation
type DebouncedResult struct {
	Query      string
	Generation uint64
	Products   []domain.Product
	Err        error
}

// Debouncer coalesces rapid queries into one search per settled query.
// Each issued search gets a generation number and only the response of
// the latest generation is delivered; older responses are dropped.
type Debouncer struct {
	delay   time.Duration
	search  SearchFunc
	deliver func(DebouncedResult)

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	// deliverMu makes the generation check and delivery one step
	deliverMu  sync.Mutex
	generation atomic.Uint64
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDebounceDelay.
func NewDebouncer(delay time.Duration, search SearchFunc, deliver func(DebouncedResult)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Debouncer{
		delay:   delay,
		search:  search,
		deliver: deliver,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Trigger schedules a search for query after the quiet period, replacing
// any pending one. An empty query only cancels what is pending.
func (d *Debouncer) Trigger(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if query == "" {
		// Invalidate anything in flight
		d.generation.Add(1)
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(query)
	})
}

// Generation returns the latest issued generation
func (d *Debouncer) Generation() uint64 {
	return d.generation.Load()
}

// Stop cancels the pending timer and any in-flight search. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation.Add(1)
	d.cancel()
}

func (d *Debouncer) fire(query string) {
	gen := d.generation.Add(1)

	products, err := d.search(d.ctx, query)

	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()

	if latest := d.generation.Load(); gen != latest {
		log.Printf("[DEBOUNCE] Dropping stale response for %q (generation %d, latest %d)", query, gen, latest)
		return
	}

	d.deliver(DebouncedResult{
		Query:      query,
		Generation: gen,
		Products:   products,
		Err:        err,
	})
}
