package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
)

// Manager owns one Engine per open document. Engines are created
// lazily on the first edit, seeded from the persisted document, and
// flushed when released or on shutdown.
type Manager struct {
	store   store.Store
	clock   clockx.Clock
	quiet   time.Duration
	timeout time.Duration
	log     *slog.Logger

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewManager(st store.Store, clock clockx.Clock, quiet, timeout time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		store:   st,
		clock:   clock,
		quiet:   quiet,
		timeout: timeout,
		log:     log,
		engines: make(map[string]*Engine),
	}
}

// ApplyEdit routes a section edit to the document's engine, creating
// the engine from the persisted document on first touch.
func (m *Manager) ApplyEdit(ctx context.Context, ownerID, key string, value json.RawMessage) error {
	eng, err := m.engineFor(ctx, ownerID)
	if err != nil {
		return err
	}
	return eng.ApplyEdit(key, value)
}

// Flush forces an immediate persist of the document's draft and
// returns the state observed right after the request was queued.
func (m *Manager) Flush(ctx context.Context, ownerID string) (State, error) {
	m.mu.Lock()
	eng, ok := m.engines[ownerID]
	m.mu.Unlock()
	if !ok {
		// Nothing edited this session; there is nothing to flush.
		return State{Status: StatusSaved}, nil
	}

	eng.Flush()
	return eng.Snapshot(), nil
}

// Status reports the save state of a document. A document with no open
// session has nothing unsaved.
func (m *Manager) Status(ctx context.Context, ownerID string) (State, error) {
	m.mu.Lock()
	eng, ok := m.engines[ownerID]
	m.mu.Unlock()
	if !ok {
		return State{Status: StatusSaved}, nil
	}
	return eng.Snapshot(), nil
}

// Document returns the persisted sections for ownerID. A never-flushed
// document reads back empty rather than as an error.
func (m *Manager) Document(ctx context.Context, ownerID string) (domain.Document, error) {
	doc, err := m.store.Documents().GetDocument(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Document{OwnerID: ownerID, Sections: domain.Sections{}}, nil
	}
	if err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// Release flushes the document's draft synchronously and drops the
// engine, ending the editing session.
func (m *Manager) Release(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	eng, ok := m.engines[ownerID]
	delete(m.engines, ownerID)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return eng.Close(ctx)
}

// Shutdown flushes every open engine. Called once during service
// shutdown, bounded by the grace-period context.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	engines := make([]*Engine, 0, len(m.engines))
	for _, eng := range m.engines {
		engines = append(engines, eng)
	}
	m.engines = make(map[string]*Engine)
	m.mu.Unlock()

	var firstErr error
	for _, eng := range engines {
		if err := eng.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Manager) engineFor(ctx context.Context, ownerID string) (*Engine, error) {
	m.mu.Lock()
	eng, ok := m.engines[ownerID]
	m.mu.Unlock()
	if ok {
		return eng, nil
	}

	// Seed the draft outside the manager lock; the store call can be slow.
	doc, err := m.Document(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if eng, ok := m.engines[ownerID]; ok {
		// Lost the creation race; the winner already holds the draft.
		return eng, nil
	}
	eng = NewEngine(ownerID, doc.Sections, m.store.Documents(), m.clock, m.quiet, m.timeout, m.log)
	m.engines[ownerID] = eng
	return eng, nil
}
