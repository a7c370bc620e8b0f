package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
	"github.com/SadidSD/Productive-Workspace/pkg/cryptox"
	"github.com/SadidSD/Productive-Workspace/pkg/idx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInvalidRole          = errors.New("invalid invite role")
	ErrNotAllowed           = errors.New("insufficient privilege")
	ErrInviteNotFound       = errors.New("invite not found or expired")
	ErrInviteAlreadyUsed    = errors.New("invite has already been used")
)

// DefaultInviteTTL is used when the caller does not supply an expiry
// window.
const DefaultInviteTTL = 7 * 24 * time.Hour

// tokenGenAttempts bounds the regenerate-on-collision loop when a
// freshly minted token fingerprint already exists. With 256-bit tokens
// a single collision is already implausible.
const tokenGenAttempts = 3

type InviteService struct {
	Store     store.Store
	Clock     clockx.Clock
	InviteTTL time.Duration
}

func (s *InviteService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// CreateInvite mints a single-use invite token into a workspace. The
// raw token is returned exactly once; only its fingerprint is stored.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	workspaceID string,
	inviterID string,
	role domain.Role,
	email string,
	ttl time.Duration,
) (string, domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if workspaceID == "" || inviterID == "" {
		log.Warn("invite creation missing required fields")
		return "", domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Validate the role being granted. Ownership is established at
	// workspace creation, never via an invite.
	if !role.Valid() || role == domain.RoleOwner {
		log.Warn("attempted to create invite with invalid role",
			slog.String("workspace_id", workspaceID),
			slog.String("role", string(role)),
		)
		return "", domain.Invite{}, ErrInvalidRole
	}

	// 3. The inviter must hold an admin or owner membership in the
	// target workspace.
	membership, err := s.Store.Memberships().GetMembership(ctx, workspaceID, inviterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("attempted to create invite without membership",
				slog.String("workspace_id", workspaceID),
				slog.String("inviter_id", inviterID),
			)
			return "", domain.Invite{}, ErrNotAllowed
		}
		log.Error("failed to fetch inviter membership", slog.Any("error", err))
		return "", domain.Invite{}, err
	}
	if !membership.Role.CanInvite() {
		log.Warn("attempted to create invite with insufficient role",
			slog.String("workspace_id", workspaceID),
			slog.String("inviter_id", inviterID),
			slog.String("role", string(membership.Role)),
		)
		return "", domain.Invite{}, ErrNotAllowed
	}

	if ttl <= 0 {
		ttl = s.InviteTTL
	}
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}

	// 4. Generate the token, fingerprint it and insert. A UNIQUE
	// collision on the fingerprint regenerates, bounded by
	// tokenGenAttempts.
	now := s.now()
	var (
		token  string
		invite domain.Invite
	)
	for attempt := 0; ; attempt++ {
		token, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			log.Error("failed to generate invite token", slog.Any("error", err))
			return "", domain.Invite{}, err
		}

		invite = domain.Invite{
			ID:          idx.New().String(),
			WorkspaceID: workspaceID,
			Email:       email,
			TokenHash:   cryptox.FingerprintToken(token),
			Role:        role,
			CreatedBy:   inviterID,
			CreatedAt:   now,
			ExpiresAt:   now.Add(ttl),
		}

		err = s.Store.Invites().CreateInvite(ctx, invite)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAlreadyExists) && attempt+1 < tokenGenAttempts {
			log.Warn("invite token fingerprint collision, regenerating",
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return "", domain.Invite{}, err
	}

	log.Debug("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("workspace_id", workspaceID),
		slog.String("role", string(role)),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	// 5. Return the raw token (not the fingerprint).
	return token, invite, nil
}

// Resolve looks up a pending invite by its raw token, for the join
// page. Unknown, used and expired tokens are indistinguishable: all
// return ErrInviteNotFound, and nothing is mutated.
func (s *InviteService) Resolve(ctx context.Context, token string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invite{}, ErrInviteNotFound
	}

	fingerprint := cryptox.FingerprintToken(token)
	invite, err := s.Store.Invites().GetPendingInviteByTokenHash(ctx, fingerprint, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite resolution attempted with invalid or expired token")
			return domain.Invite{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	return invite, nil
}

// Accept consumes an invite token and joins the acting user to the
// invite's workspace. It performs the following steps, all in one
// transaction:
// 1. Conditionally sets used_at (null→now, unexpired only); the update
// succeeding is what decides the winner under concurrency
// 2. On success, creates the membership at the invite's role unless one
// already exists for the pair, which is left untouched
// 3. On failure, distinguishes an already-used token (idempotent
// success when the acting user is a member, ErrInviteAlreadyUsed
// otherwise) from unknown or expired ones (uniform ErrInviteNotFound)
func (s *InviteService) Accept(ctx context.Context, token, actingUserID string) (string, error) {
	log := slogx.FromContext(ctx)

	if token == "" || actingUserID == "" {
		log.Warn("invite acceptance missing required fields")
		return "", ErrInvalidInviteRequest
	}

	fingerprint := cryptox.FingerprintToken(token)

	var workspaceID string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := s.now()

		// 1. The conditional update is the sole decision point: exactly
		// one concurrent acceptance observes consumed = true.
		consumed, err := tx.Invites().ConsumeInvite(ctx, fingerprint, actingUserID, now)
		if err != nil {
			log.Error("failed to consume invite", slog.Any("error", err))
			return err
		}

		invite, err := tx.Invites().GetInviteByTokenHash(ctx, fingerprint)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("invite acceptance attempted with unknown token")
				return ErrInviteNotFound
			}
			log.Error("failed to fetch invite", slog.Any("error", err))
			return err
		}

		if consumed {
			// 2. Winner path: join at the invite's role. An existing
			// membership for the pair keeps its original role.
			_, err := tx.Memberships().UpsertMembership(ctx, domain.Membership{
				WorkspaceID: invite.WorkspaceID,
				UserID:      actingUserID,
				Role:        invite.Role,
				JoinedAt:    now,
			})
			if err != nil {
				log.Error("failed to create membership",
					slog.String("workspace_id", invite.WorkspaceID),
					slog.String("user_id", actingUserID),
					slog.Any("error", err),
				)
				return err
			}
			workspaceID = invite.WorkspaceID
			return nil
		}

		// 3. Loser path. A still-null used_at means the token existed
		// but was expired; expired and unknown stay indistinguishable.
		if invite.UsedAt == nil {
			log.Warn("invite acceptance attempted with expired token",
				slog.String("invite_id", invite.ID),
			)
			return ErrInviteNotFound
		}

		// Already used: a retry by the member who joined is idempotent.
		_, err = tx.Memberships().GetMembership(ctx, invite.WorkspaceID, actingUserID)
		if err == nil {
			workspaceID = invite.WorkspaceID
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to fetch membership", slog.Any("error", err))
			return err
		}

		log.Warn("invite acceptance attempted with already-used token",
			slog.String("invite_id", invite.ID),
		)
		return ErrInviteAlreadyUsed
	})
	if err != nil {
		return "", err
	}

	log.Info("invite accepted",
		slog.String("workspace_id", workspaceID),
		slog.String("user_id", actingUserID),
	)

	return workspaceID, nil
}
