package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
)

// blockingPersister hands each persistence call to the test: the call
// appears on began and blocks until the test sends its outcome on
// release. This pins down exactly when a flight starts and resolves.
type blockingPersister struct {
	began   chan domain.Document
	release chan error
}

func newBlockingPersister() *blockingPersister {
	return &blockingPersister{
		began:   make(chan domain.Document, 8),
		release: make(chan error),
	}
}

func (p *blockingPersister) ReplaceDocument(ctx context.Context, doc domain.Document) error {
	p.began <- doc
	select {
	case err := <-p.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *blockingPersister) waitBegan(t *testing.T) domain.Document {
	t.Helper()
	select {
	case doc := <-p.began:
		return doc
	case <-time.After(2 * time.Second):
		t.Fatal("no persistence call started")
		return domain.Document{}
	}
}

func (p *blockingPersister) requireNoBegin(t *testing.T) {
	t.Helper()
	select {
	case <-p.began:
		t.Fatal("unexpected persistence call")
	case <-time.After(50 * time.Millisecond):
	}
}

func newTestEngine(t *testing.T, persisted domain.Sections, p Persister) (*Engine, *clockx.FakeClock) {
	t.Helper()
	clk := clockx.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := NewEngine("doc-1", persisted, p, clk, time.Second, 5*time.Second, log)
	return eng, clk
}

func waitStatus(t *testing.T, eng *Engine, want Status) State {
	t.Helper()
	var st State
	require.Eventually(t, func() bool {
		st = eng.Snapshot()
		return st.Status == want
	}, 2*time.Second, 2*time.Millisecond, "status never reached %s", want)
	return st
}

func TestEngineDebouncesRapidEdits(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"a"}`)))
	assert.Equal(t, StatusUnsaved, eng.Snapshot().Status)

	// Each edit inside the quiet period re-arms the timer.
	clk.Advance(600 * time.Millisecond)
	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"ab"}`)))
	clk.Advance(600 * time.Millisecond)
	p.requireNoBegin(t)

	clk.Advance(400 * time.Millisecond)
	doc := p.waitBegan(t)
	assert.Equal(t, "doc-1", doc.OwnerID)
	assert.Equal(t, json.RawMessage(`{"text":"ab"}`), doc.Sections["notes"])
	assert.Equal(t, StatusSaving, eng.Snapshot().Status)

	p.release <- nil
	st := waitStatus(t, eng, StatusSaved)
	assert.False(t, st.SaveFailed)
	assert.False(t, st.LastSavedAt.IsZero())
}

func TestEngineSingleFlightWithQueuedCycle(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("roadmap", json.RawMessage(`["v1"]`)))
	clk.Advance(time.Second)
	first := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`["v1"]`), first.Sections["roadmap"])

	// Edits mid-flight go into the draft without starting a second call.
	require.NoError(t, eng.ApplyEdit("roadmap", json.RawMessage(`["v1","v2"]`)))
	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"n"}`)))
	p.requireNoBegin(t)
	assert.Equal(t, 0, clk.PendingTimers(), "no debounce cycle while a call is in flight")

	p.release <- nil

	// The resolved flight covered stale data, so we are Unsaved with
	// exactly one fresh debounce cycle armed.
	waitStatus(t, eng, StatusUnsaved)
	assert.Equal(t, 1, clk.PendingTimers())

	clk.Advance(time.Second)
	second := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`["v1","v2"]`), second.Sections["roadmap"])
	assert.Equal(t, json.RawMessage(`{"text":"n"}`), second.Sections["notes"])

	p.release <- nil
	waitStatus(t, eng, StatusSaved)
}

func TestEngineFailureKeepsDraftAndRetries(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("workflow", json.RawMessage(`["todo"]`)))
	clk.Advance(time.Second)
	p.waitBegan(t)

	p.release <- errors.New("disk full")

	st := waitStatus(t, eng, StatusUnsaved)
	assert.True(t, st.SaveFailed)
	assert.Equal(t, domain.Sections{"workflow": json.RawMessage(`["todo"]`)}, eng.Draft())

	// An explicit flush retries immediately with the preserved draft.
	eng.Flush()
	doc := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`["todo"]`), doc.Sections["workflow"])

	p.release <- nil
	st = waitStatus(t, eng, StatusSaved)
	assert.False(t, st.SaveFailed, "error flag clears on the next successful save")
}

func TestEngineFlushDuringFlightQueuesSecondPersist(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"a"}`)))
	clk.Advance(time.Second)
	p.waitBegan(t)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"ab"}`)))
	eng.Flush()
	p.requireNoBegin(t)

	p.release <- nil

	// The queued flush persists right away, no quiet period.
	doc := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`{"text":"ab"}`), doc.Sections["notes"])

	p.release <- nil
	waitStatus(t, eng, StatusSaved)
}

func TestEngineFlushOnCleanDocumentIsNoop(t *testing.T) {
	p := newBlockingPersister()
	eng, _ := newTestEngine(t, domain.Sections{"notes": json.RawMessage(`{}`)}, p)

	eng.Flush()
	p.requireNoBegin(t)
	assert.Equal(t, StatusSaved, eng.Snapshot().Status)
}

func TestEngineRejectsInvalidPayload(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	err := eng.ApplyEdit("roadmap", json.RawMessage(`{"not":"an array"}`))
	require.ErrorIs(t, err, ErrInvalidSection)

	assert.Equal(t, StatusSaved, eng.Snapshot().Status)
	assert.Equal(t, 0, clk.PendingTimers())
}

func TestEnginePersistTimeout(t *testing.T) {
	clk := clockx.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := newBlockingPersister()
	// Short real-time persistence deadline; the call blocks past it.
	eng := NewEngine("doc-1", nil, p, clk, time.Second, 20*time.Millisecond, log)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"slow"}`)))
	clk.Advance(time.Second)
	p.waitBegan(t)

	st := waitStatus(t, eng, StatusUnsaved)
	assert.True(t, st.SaveFailed)
	assert.Equal(t, json.RawMessage(`{"text":"slow"}`), eng.Draft()["notes"])
}

func TestEngineCloseFlushesUnsavedDraft(t *testing.T) {
	p := newBlockingPersister()
	eng, _ := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"bye"}`)))

	done := make(chan error, 1)
	go func() { done <- eng.Close(context.Background()) }()

	doc := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`{"text":"bye"}`), doc.Sections["notes"])
	p.release <- nil

	require.NoError(t, <-done)
	assert.Equal(t, StatusSaved, eng.Snapshot().Status)
}

func TestEngineCloseAfterQueuedEditKeepsSingleFlight(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"a"}`)))
	clk.Advance(time.Second)
	p.waitBegan(t)

	// Edit mid-flight: the resolving flight would normally re-arm the
	// debounce timer for it.
	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"ab"}`)))

	done := make(chan error, 1)
	go func() { done <- eng.Close(context.Background()) }()

	p.release <- nil

	// Close picks up the queued edit itself; the re-armed debounce cycle
	// must not start a second call alongside Close's final persist.
	doc := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`{"text":"ab"}`), doc.Sections["notes"])
	clk.Advance(2 * time.Second)
	p.requireNoBegin(t)

	p.release <- nil
	require.NoError(t, <-done)
	assert.Equal(t, StatusSaved, eng.Snapshot().Status)
}

func TestEngineCloseWaitsForQueuedFlush(t *testing.T) {
	p := newBlockingPersister()
	eng, clk := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("roadmap", json.RawMessage(`["v1"]`)))
	clk.Advance(time.Second)
	p.waitBegan(t)

	require.NoError(t, eng.ApplyEdit("roadmap", json.RawMessage(`["v1","v2"]`)))
	eng.Flush()

	done := make(chan error, 1)
	go func() { done <- eng.Close(context.Background()) }()

	p.release <- nil

	// The queued flush starts the second persist as the first resolves;
	// Close must not report success while it is still running.
	doc := p.waitBegan(t)
	assert.Equal(t, json.RawMessage(`["v1","v2"]`), doc.Sections["roadmap"])
	select {
	case err := <-done:
		t.Fatalf("Close returned %v with a persist still in flight", err)
	case <-time.After(50 * time.Millisecond):
	}

	p.release <- nil
	require.NoError(t, <-done)
	assert.Equal(t, StatusSaved, eng.Snapshot().Status)
}

func TestEngineCloseReportsFinalPersistFailure(t *testing.T) {
	p := newBlockingPersister()
	eng, _ := newTestEngine(t, nil, p)

	require.NoError(t, eng.ApplyEdit("notes", json.RawMessage(`{"text":"x"}`)))

	done := make(chan error, 1)
	go func() { done <- eng.Close(context.Background()) }()

	p.waitBegan(t)
	p.release <- errors.New("disk full")

	require.Error(t, <-done)
	st := eng.Snapshot()
	assert.True(t, st.SaveFailed)
	assert.Equal(t, json.RawMessage(`{"text":"x"}`), eng.Draft()["notes"], "draft survives the failed final flush")
}
