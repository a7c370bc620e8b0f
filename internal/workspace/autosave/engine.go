// Package autosave holds the server-side draft for an open document
// editing session and coalesces rapid section edits into debounced
// whole-document persistence. One Engine per document; the Manager owns
// the Engine lifecycle.
package autosave

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
)

// Status is the client-visible save state of a document session.
type Status string

const (
	StatusSaved   Status = "saved"
	StatusUnsaved Status = "unsaved"
	StatusSaving  Status = "saving"
)

// State is a point-in-time snapshot of the engine for the status
// endpoint. SaveFailed stays set after a failed persist until a later
// persist succeeds.
type State struct {
	Status      Status
	SaveFailed  bool
	LastSavedAt time.Time
}

// Persister is the slice of the store the engine writes through.
type Persister interface {
	ReplaceDocument(ctx context.Context, doc domain.Document) error
}

const (
	DefaultQuietPeriod    = 1000 * time.Millisecond
	DefaultPersistTimeout = 5 * time.Second
)

// Engine debounces edits to one document. Invariants it maintains:
// at most one persistence call in flight, every accepted edit reaches
// the draft before the call that carries it is issued, and a failed
// persist never discards the draft.
type Engine struct {
	ownerID string
	persist Persister
	clock   clockx.Clock
	quiet   time.Duration
	timeout time.Duration
	log     *slog.Logger

	mu          sync.Mutex
	draft       domain.Sections
	status      Status
	saveFailed  bool
	lastSavedAt time.Time
	lastSaveErr error  // outcome of the most recent resolved persist
	gen         uint64 // bumped on every accepted edit
	timer       *clockx.Timer
	inFlight    bool
	flightDone  chan struct{}
	editQueued  bool // edit arrived mid-flight: one debounce cycle after resolve
	flushQueued bool // flush arrived mid-flight: persist immediately after resolve
}

// NewEngine starts a session over the given persisted sections. The
// engine begins in Saved with the draft equal to what is on disk.
func NewEngine(ownerID string, persisted domain.Sections, p Persister, clock clockx.Clock, quiet, timeout time.Duration, log *slog.Logger) *Engine {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return &Engine{
		ownerID: ownerID,
		persist: p,
		clock:   clock,
		quiet:   quiet,
		timeout: timeout,
		log:     log.With("doc_id", ownerID),
		draft:   persisted.Clone(),
		status:  StatusSaved,
	}
}

// ApplyEdit validates the payload, merges it into the draft and
// (re)arms the debounce timer. Returns without blocking on any
// persistence work.
func (e *Engine) ApplyEdit(key string, value json.RawMessage) error {
	if err := ValidateSection(key, value); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft = Merge(e.draft, key, value)
	e.gen++
	e.status = StatusUnsaved

	if e.inFlight {
		// No cancellation mid-flight. The resolving flight starts one
		// fresh debounce cycle for everything accumulated since.
		e.editQueued = true
		return nil
	}

	e.armTimerLocked()
	return nil
}

// Flush persists the draft now instead of waiting out the quiet
// period. A flush while a call is in flight queues a second persist
// for when the flight resolves. Flushing a clean document is a no-op.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		e.flushQueued = true
		return
	}
	if e.status != StatusUnsaved {
		return
	}

	e.stopTimerLocked()
	e.startPersistLocked()
}

// Snapshot returns the current save state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Status:      e.status,
		SaveFailed:  e.saveFailed,
		LastSavedAt: e.lastSavedAt,
	}
}

// Draft returns a copy of the current draft sections.
func (e *Engine) Draft() domain.Sections {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// Close flushes any unsaved draft and stops the engine's timer. The
// final persist goes through the same single-flight machinery as every
// other save, so at no point do two persistence calls overlap, and a
// persist a queued flush started is waited out before Close reports
// success. Bounded by ctx.
func (e *Engine) Close(ctx context.Context) error {
	launched := false
	for {
		e.mu.Lock()
		e.stopTimerLocked()

		if e.inFlight {
			done := e.flightDone
			e.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		if e.status != StatusUnsaved {
			e.mu.Unlock()
			return nil
		}
		if launched {
			// Our final persist resolved and the draft is still dirty:
			// report its failure rather than retrying forever.
			err := e.lastSaveErr
			e.mu.Unlock()
			return err
		}

		e.startPersistLocked()
		launched = true
		e.mu.Unlock()
	}
}

func (e *Engine) armTimerLocked() {
	e.stopTimerLocked()
	e.timer = e.clock.AfterFunc(e.quiet, e.onDebounce)
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) onDebounce() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timer = nil
	if e.inFlight || e.status != StatusUnsaved {
		return
	}
	e.startPersistLocked()
}

// startPersistLocked snapshots the draft and launches the persistence
// call. Caller holds e.mu; status must be Unsaved and no call in
// flight.
func (e *Engine) startPersistLocked() {
	snapshot := e.draft.Clone()
	gen := e.gen
	e.status = StatusSaving
	e.inFlight = true
	e.flightDone = make(chan struct{})

	go e.runPersist(snapshot, gen)
}

func (e *Engine) runPersist(snapshot domain.Sections, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	err := e.persist.ReplaceDocument(ctx, domain.Document{
		OwnerID:   e.ownerID,
		Sections:  snapshot,
		UpdatedAt: e.clock.Now(),
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	e.inFlight = false
	close(e.flightDone)
	e.flightDone = nil
	e.lastSaveErr = err

	if err != nil {
		e.status = StatusUnsaved
		e.saveFailed = true
		e.log.Warn("autosave persist failed", "error", err)
	} else {
		e.saveFailed = false
		e.lastSavedAt = e.clock.Now()
		if e.gen == gen {
			e.status = StatusSaved
		} else {
			e.status = StatusUnsaved
		}
	}

	flush := e.flushQueued
	edit := e.editQueued
	e.flushQueued = false
	e.editQueued = false

	if e.status != StatusUnsaved {
		return
	}
	switch {
	case flush:
		e.startPersistLocked()
	case edit:
		e.armTimerLocked()
	case err != nil:
		// Failed with nothing queued: draft stays, the next edit or
		// flush retries.
	}
}
