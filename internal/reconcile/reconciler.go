// Package reconcile heals an in-memory Book against a parallel
// snapshot stream, injecting or draining anonymous volume so the
// book's visible top-of-book tracks an external truth source.
package reconcile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lukiod/LOB-Engine/internal/orderbook"
)

// SentinelPrice marks an absent level in a snapshot row and must never
// be passed to the Book as a real price.
const SentinelPrice orderbook.Price = -9999999999

// DummyIDStart is the first synthetic OrderID the Reconciler hands out
// when healing a level. LOBSTER never issues IDs this large, so the
// range is disjoint from every real order the book will ever see.
const DummyIDStart orderbook.OrderID = 9_000_000_000

// DrainOrderID is the reserved ID passed to Book.ExecuteOrder when
// healing needs to shrink a level's anonymous volume rather than add
// to it. It is always unknown to the book's lookup, so it always takes
// the fallback path that drains the Level's aggregate volume directly.
const DrainOrderID orderbook.OrderID = 0

// SnapshotLevel is one (ask, bid) pair at a given depth of a snapshot
// row.
type SnapshotLevel struct {
	AskPrice orderbook.Price
	AskSize  orderbook.Quantity
	BidPrice orderbook.Price
	BidSize  orderbook.Quantity
}

// SnapshotRow is a full snapshot line: N levels, best level first.
type SnapshotRow []SnapshotLevel

// Config controls how deep the Reconciler checks and how many
// diagnostic messages it retains.
type Config struct {
	// Depth is how many levels of each row to reconcile. The source
	// driver this is generalized from only ever checked the best
	// level; this module checks Depth levels per side per row.
	Depth int
	// MaxDiagnostics bounds how many human-readable mismatch
	// descriptions are retained; healing itself is never bounded.
	MaxDiagnostics int
}

// DefaultConfig returns the Config this module's behavior was
// generalized under: 10 levels deep (matching LOBSTER's standard
// "_10" snapshot file depth), 10 retained diagnostics.
func DefaultConfig() Config {
	return Config{Depth: 10, MaxDiagnostics: 10}
}

// Reconciler owns the dummy-ID counter and bookkeeping needed to heal
// one Book against its truth stream. It is not safe for concurrent
// use, matching the Book it wraps.
type Reconciler struct {
	book *orderbook.Book
	cfg  Config
	log  *zap.Logger
	m    *Metrics

	nextDummyID orderbook.OrderID

	persistentLogicErrors int
	diagnostics           []string
}

// New constructs a Reconciler over book. A nil logger becomes
// zap.NewNop(); a nil Metrics disables metric recording entirely
// (useful in tests that don't want to stand up a registry).
func New(book *orderbook.Book, cfg Config, log *zap.Logger, m *Metrics) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultConfig().Depth
	}
	if cfg.MaxDiagnostics <= 0 {
		cfg.MaxDiagnostics = DefaultConfig().MaxDiagnostics
	}
	return &Reconciler{
		book:        book,
		cfg:         cfg,
		log:         log,
		m:           m,
		nextDummyID: DummyIDStart,
	}
}

// PersistentLogicErrors reports how many non-zero-but-wrong level
// mismatches have been observed so far. Missing-level healings (the
// book had zero volume where the truth stream expected some) are not
// counted here; they are the expected, silent consequence of
// replaying a window that starts after some resting orders were
// already placed.
func (r *Reconciler) PersistentLogicErrors() int {
	return r.persistentLogicErrors
}

// Diagnostics returns up to Config.MaxDiagnostics human-readable
// descriptions of the persistent mismatches observed so far.
func (r *Reconciler) Diagnostics() []string {
	return r.diagnostics
}

// Init primes the book from row 0 of the snapshot stream, per the
// initialization protocol: every non-sentinel level becomes anonymous
// volume. It does not advance any message counter or emit metrics;
// it is priming, not reconciliation.
func (r *Reconciler) Init(row SnapshotRow) {
	for _, lvl := range row {
		if lvl.AskPrice != SentinelPrice {
			r.book.AddAnonymousVolume(orderbook.Sell, lvl.AskPrice, lvl.AskSize)
		}
		if lvl.BidPrice != SentinelPrice {
			r.book.AddAnonymousVolume(orderbook.Buy, lvl.BidPrice, lvl.BidSize)
		}
	}
}

// Reconcile checks row against the book's current state, healing any
// discrepancy found within the configured Depth. Call this once per
// message after the message has been fully applied, advancing row in
// lockstep with the message stream (see the package-level protocol
// note in doc.go).
func (r *Reconciler) Reconcile(row SnapshotRow) {
	depth := r.cfg.Depth
	if depth > len(row) {
		depth = len(row)
	}
	for i := 0; i < depth; i++ {
		lvl := row[i]
		r.check(orderbook.Sell, lvl.AskPrice, lvl.AskSize)
		r.check(orderbook.Buy, lvl.BidPrice, lvl.BidSize)
	}
	if r.m != nil {
		r.m.rowsReconciled.Inc()
	}
}

func (r *Reconciler) check(side orderbook.Side, price orderbook.Price, truthSize orderbook.Quantity) {
	if price == SentinelPrice {
		return
	}
	current := r.book.VolumeAt(price)
	if current == truthSize {
		return
	}

	missing := current == 0
	if !missing && len(r.diagnostics) < r.cfg.MaxDiagnostics {
		r.diagnostics = append(r.diagnostics, fmt.Sprintf(
			"%s level %d: expected volume %d, book had %d", side, price, truthSize, current))
	}
	if !missing {
		r.persistentLogicErrors++
		if r.m != nil {
			r.m.persistent.Set(float64(r.persistentLogicErrors))
		}
		r.log.Warn("persistent level mismatch",
			zap.String("side", side.String()),
			zap.Int64("price", int64(price)),
			zap.Uint64("expected", uint64(truthSize)),
			zap.Uint64("actual", uint64(current)),
		)
	}

	r.heal(side, price, current, truthSize, missing)
}

func (r *Reconciler) heal(side orderbook.Side, price orderbook.Price, current, truthSize orderbook.Quantity, missing bool) {
	if missing {
		r.injectSynthetic(side, price, truthSize)
		if r.m != nil {
			r.m.healedMissing.Inc()
		}
		return
	}

	delta := int64(truthSize) - int64(current)
	switch {
	case delta > 0:
		r.injectSynthetic(side, price, orderbook.Quantity(delta))
		if r.m != nil {
			r.m.healedMismatch.Inc()
		}
	case delta < 0:
		r.book.ExecuteOrder(DrainOrderID, orderbook.Quantity(-delta), side, price)
		if r.m != nil {
			r.m.drained.Inc()
		}
	}
}

func (r *Reconciler) injectSynthetic(side orderbook.Side, price orderbook.Price, size orderbook.Quantity) {
	id := r.nextDummyID
	r.nextDummyID++
	r.book.AddOrder(id, side, price, size, 0)
}
