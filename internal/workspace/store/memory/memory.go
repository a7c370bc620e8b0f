// Package memory provides an in-memory store.Store for tests. It
// implements the same contract as the sqlite driver, including the
// conditional invite consumption and transactional rollback, so service
// tests can run without a database file. Construct a fresh Store per
// test; there is no shared module-level state.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
)

type state struct {
	workspaces map[string]domain.Workspace
	slugs      map[string]string // slug -> workspace id
	members    map[string]domain.Membership
	invites    map[string]domain.Invite // keyed by token hash
	documents  map[string]domain.Document
}

func newState() *state {
	return &state{
		workspaces: make(map[string]domain.Workspace),
		slugs:      make(map[string]string),
		members:    make(map[string]domain.Membership),
		invites:    make(map[string]domain.Invite),
		documents:  make(map[string]domain.Document),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.workspaces {
		c.workspaces[k] = v
	}
	for k, v := range st.slugs {
		c.slugs[k] = v
	}
	for k, v := range st.members {
		c.members[k] = v
	}
	for k, v := range st.invites {
		c.invites[k] = v
	}
	for k, v := range st.documents {
		v.Sections = v.Sections.Clone()
		c.documents[k] = v
	}
	return c
}

func memberKey(workspaceID, userID string) string { return workspaceID + "\x00" + userID }

type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Workspaces() store.Workspaces   { return &workspacesRepo{s: s} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{s: s} }
func (s *Store) Invites() store.Invites         { return &invitesRepo{s: s} }
func (s *Store) Documents() store.Documents     { return &documentsRepo{s: s} }

func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return nil }

// Tx locks the whole store for the duration of the transaction and
// keeps a snapshot for rollback. Coarse, but it gives the same
// observable semantics as the sqlite driver: transactions are atomic
// and serialized.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	s.mu.Lock()
	return &txStore{s: s, snapshot: s.state.clone()}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

type txStore struct {
	s        *Store
	snapshot *state
	done     bool
}

func (t *txStore) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.state = t.snapshot
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Workspaces() store.Workspaces   { return &workspacesRepo{s: t.s, intx: true} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{s: t.s, intx: true} }
func (t *txStore) Invites() store.Invites         { return &invitesRepo{s: t.s, intx: true} }
func (t *txStore) Documents() store.Documents     { return &documentsRepo{s: t.s, intx: true} }

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

var errNestedTx = errors.New("memory: nested transactions not supported")

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

// lock acquires the store mutex unless the repo runs inside a
// transaction, where the Tx already holds it.
func lock(s *Store, intx bool) func() {
	if intx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type workspacesRepo struct {
	s    *Store
	intx bool
}

func (r *workspacesRepo) CreateWorkspace(ctx context.Context, w domain.Workspace) error {
	defer lock(r.s, r.intx)()

	st := r.s.state
	if _, exists := st.workspaces[w.ID]; exists {
		return store.ErrAlreadyExists
	}
	if _, exists := st.slugs[w.Slug]; exists {
		return store.ErrAlreadyExists
	}
	st.workspaces[w.ID] = w
	st.slugs[w.Slug] = w.ID
	return nil
}

func (r *workspacesRepo) GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error) {
	defer lock(r.s, r.intx)()

	w, ok := r.s.state.workspaces[id]
	if !ok {
		return domain.Workspace{}, store.ErrNotFound
	}
	return w, nil
}

type membershipsRepo struct {
	s    *Store
	intx bool
}

func (r *membershipsRepo) GetMembership(ctx context.Context, workspaceID, userID string) (domain.Membership, error) {
	defer lock(r.s, r.intx)()

	m, ok := r.s.state.members[memberKey(workspaceID, userID)]
	if !ok {
		return domain.Membership{}, store.ErrNotFound
	}
	return m, nil
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	defer lock(r.s, r.intx)()

	key := memberKey(m.WorkspaceID, m.UserID)
	if existing, ok := r.s.state.members[key]; ok {
		return existing, nil
	}
	r.s.state.members[key] = m
	return m, nil
}

func (r *membershipsRepo) ListWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	defer lock(r.s, r.intx)()

	var members []domain.Membership
	for _, m := range r.s.state.members {
		if m.WorkspaceID == workspaceID {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].UserID < members[j].UserID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

type invitesRepo struct {
	s    *Store
	intx bool
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	defer lock(r.s, r.intx)()

	if _, exists := r.s.state.invites[inv.TokenHash]; exists {
		return store.ErrAlreadyExists
	}
	r.s.state.invites[inv.TokenHash] = inv
	return nil
}

func (r *invitesRepo) GetPendingInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error) {
	defer lock(r.s, r.intx)()

	inv, ok := r.s.state.invites[hash]
	if !ok || !inv.Pending(now) {
		return domain.Invite{}, store.ErrNotFound
	}
	return inv, nil
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	defer lock(r.s, r.intx)()

	inv, ok := r.s.state.invites[hash]
	if !ok {
		return domain.Invite{}, store.ErrNotFound
	}
	return inv, nil
}

func (r *invitesRepo) ConsumeInvite(ctx context.Context, hash, usedBy string, now time.Time) (bool, error) {
	defer lock(r.s, r.intx)()

	inv, ok := r.s.state.invites[hash]
	if !ok || !inv.Pending(now) {
		return false, nil
	}

	usedAt := now
	inv.UsedAt = &usedAt
	inv.UsedBy = usedBy
	r.s.state.invites[hash] = inv
	return true, nil
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	defer lock(r.s, r.intx)()

	var deleted int64
	for hash, inv := range r.s.state.invites {
		if inv.UsedAt == nil && !now.Before(inv.ExpiresAt) {
			delete(r.s.state.invites, hash)
			deleted++
		}
	}
	return deleted, nil
}

type documentsRepo struct {
	s    *Store
	intx bool
}

func (r *documentsRepo) GetDocument(ctx context.Context, ownerID string) (domain.Document, error) {
	defer lock(r.s, r.intx)()

	doc, ok := r.s.state.documents[ownerID]
	if !ok {
		return domain.Document{}, store.ErrNotFound
	}
	doc.Sections = doc.Sections.Clone()
	return doc, nil
}

func (r *documentsRepo) ReplaceDocument(ctx context.Context, doc domain.Document) error {
	defer lock(r.s, r.intx)()

	doc.Sections = doc.Sections.Clone()
	r.s.state.documents[doc.OwnerID] = doc
	return nil
}
