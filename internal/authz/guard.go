// internal/authz/guard.go
// Ownership and match-based access control for protected resources.
// The guard sits behind the authentication gate: by the time it runs, the
// acting account is known to be active. It decides whether that account may
// touch a specific resource, and reports every denial to the security log.
// All ambiguity fails closed.

package authz

import (
	"context"
	"fmt"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// ResourceKind names the access rule to apply
type ResourceKind string

const (
	// KindSelf allows access only when the resource ID is the acting account
	KindSelf ResourceKind = "self"
	// KindOwnedEntity allows access only to the entity's owner
	KindOwnedEntity ResourceKind = "owned-entity"
	// KindMatchParticipant allows access only between mutually matched users
	KindMatchParticipant ResourceKind = "match-participant"
)

// MatchChecker answers whether two users have a mutual match.
// Implemented by the relationship detector.
type MatchChecker interface {
	IsMatch(ctx context.Context, userA, userB int64) (bool, error)
}

// OwnerLookup resolves the owner of an entity. Implementations return a
// resource-not-found kind when the entity does not exist.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, resourceID int64) (int64, error)
}

// AccessRequest describes the resource a caller wants to touch
type AccessRequest struct {
	Kind       ResourceKind
	Entity     string // registered owner-lookup name, for owned entities
	ResourceID int64
}

// Guard evaluates access requests
type Guard struct {
	matches MatchChecker
	owners  map[string]OwnerLookup
	seclog  SecurityLogger
}

// NewGuard creates a guard backed by the given match checker and security log
func NewGuard(matches MatchChecker, seclog SecurityLogger) *Guard {
	return &Guard{
		matches: matches,
		owners:  make(map[string]OwnerLookup),
		seclog:  seclog,
	}
}

// RegisterOwner registers an owner lookup under an entity name.
// Called once at wiring time; not safe for concurrent use afterwards.
func (g *Guard) RegisterOwner(entity string, lookup OwnerLookup) {
	g.owners[entity] = lookup
}

// AuthorizeAccess decides whether accountID may access the requested
// resource. It returns nil on allow and a classified error on deny.
// A missing resource identifier is a malformed request, not a denial.
func (g *Guard) AuthorizeAccess(ctx context.Context, accountID int64, req AccessRequest) error {
	if req.ResourceID == 0 {
		return apperrors.New(apperrors.KindMalformedRequest, "missing resource identifier")
	}

	switch req.Kind {
	case KindSelf:
		if req.ResourceID == accountID {
			return nil
		}
		return g.deny(ctx, accountID, req, "resource belongs to another account",
			apperrors.New(apperrors.KindAccessDenied, "access denied"))

	case KindOwnedEntity:
		return g.authorizeOwned(ctx, accountID, req)

	case KindMatchParticipant:
		return g.authorizeMatch(ctx, accountID, req)

	default:
		// An unknown kind is a programming error; refuse rather than allow.
		return g.deny(ctx, accountID, req, "unknown resource kind",
			apperrors.Internal(fmt.Errorf("unknown resource kind %q", req.Kind)))
	}
}

func (g *Guard) authorizeOwned(ctx context.Context, accountID int64, req AccessRequest) error {
	lookup, ok := g.owners[req.Entity]
	if !ok {
		return g.deny(ctx, accountID, req, "no owner lookup registered",
			apperrors.Internal(fmt.Errorf("no owner lookup registered for entity %q", req.Entity)))
	}

	owner, err := lookup.OwnerOf(ctx, req.ResourceID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindResourceNotFound) {
			return g.deny(ctx, accountID, req, "resource does not exist", err)
		}
		return g.deny(ctx, accountID, req, "owner lookup failed", apperrors.Internal(err))
	}

	if owner != accountID {
		// Deliberately indistinguishable from a missing resource, so a
		// caller cannot probe for the existence of other users' entities.
		return g.deny(ctx, accountID, req, "ownership mismatch",
			apperrors.New(apperrors.KindResourceNotFound, "resource not found"))
	}

	return nil
}

func (g *Guard) authorizeMatch(ctx context.Context, accountID int64, req AccessRequest) error {
	matched, err := g.matches.IsMatch(ctx, accountID, req.ResourceID)
	if err != nil {
		return g.deny(ctx, accountID, req, "match lookup failed", apperrors.Internal(err))
	}

	if !matched {
		return g.deny(ctx, accountID, req, "no mutual match",
			apperrors.New(apperrors.KindAccessDenied, "access denied"))
	}

	return nil
}

// deny records the denial and returns the classified error unchanged
func (g *Guard) deny(ctx context.Context, accountID int64, req AccessRequest, reason string, err error) error {
	g.seclog.Denied(ctx, DenialEvent{
		ActorID:    accountID,
		Kind:       req.Kind,
		Entity:     req.Entity,
		ResourceID: req.ResourceID,
		Reason:     reason,
	})
	denialsTotal.WithLabelValues(string(req.Kind), reason).Inc()
	return err
}
