package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

type fakeMatches struct {
	pairs map[[2]int64]bool
	err   error
}

func (f *fakeMatches) IsMatch(_ context.Context, a, b int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pairs[[2]int64{a, b}] || f.pairs[[2]int64{b, a}], nil
}

type fakeOwners struct {
	owners map[int64]int64
	err    error
}

func (f *fakeOwners) OwnerOf(_ context.Context, resourceID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	owner, ok := f.owners[resourceID]
	if !ok {
		return 0, apperrors.New(apperrors.KindResourceNotFound, "resource not found")
	}
	return owner, nil
}

type recordingSeclog struct {
	events []DenialEvent
}

func (r *recordingSeclog) Denied(_ context.Context, event DenialEvent) {
	r.events = append(r.events, event)
}

func TestGuardSelfAccess(t *testing.T) {
	ctx := context.Background()
	seclog := &recordingSeclog{}
	guard := NewGuard(&fakeMatches{}, seclog)

	t.Run("own account is allowed", func(t *testing.T) {
		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindSelf, ResourceID: 7})
		assert.NoError(t, err)
	})

	t.Run("another account is denied and logged", func(t *testing.T) {
		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindSelf, ResourceID: 8})
		assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
		require.Len(t, seclog.events, 1)
		assert.Equal(t, int64(7), seclog.events[0].ActorID)
		assert.Equal(t, KindSelf, seclog.events[0].Kind)
	})
}

func TestGuardOwnedEntity(t *testing.T) {
	ctx := context.Background()

	newGuard := func(owners OwnerLookup) (*Guard, *recordingSeclog) {
		seclog := &recordingSeclog{}
		guard := NewGuard(&fakeMatches{}, seclog)
		guard.RegisterOwner("photo", owners)
		return guard, seclog
	}

	t.Run("owner is allowed", func(t *testing.T) {
		guard, seclog := newGuard(&fakeOwners{owners: map[int64]int64{42: 7}})

		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindOwnedEntity, Entity: "photo", ResourceID: 42})
		assert.NoError(t, err)
		assert.Empty(t, seclog.events)
	})

	t.Run("non-owner denial is indistinguishable from missing resource", func(t *testing.T) {
		guard, seclog := newGuard(&fakeOwners{owners: map[int64]int64{42: 7}})

		err := guard.AuthorizeAccess(ctx, 8, AccessRequest{Kind: KindOwnedEntity, Entity: "photo", ResourceID: 42})
		assert.True(t, apperrors.IsKind(err, apperrors.KindResourceNotFound))
		assert.Len(t, seclog.events, 1)
	})

	t.Run("missing resource is denied", func(t *testing.T) {
		guard, _ := newGuard(&fakeOwners{owners: map[int64]int64{}})

		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindOwnedEntity, Entity: "photo", ResourceID: 99})
		assert.True(t, apperrors.IsKind(err, apperrors.KindResourceNotFound))
	})

	t.Run("lookup failure fails closed", func(t *testing.T) {
		guard, _ := newGuard(&fakeOwners{err: errors.New("connection reset")})

		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindOwnedEntity, Entity: "photo", ResourceID: 42})
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})

	t.Run("unregistered entity fails closed", func(t *testing.T) {
		seclog := &recordingSeclog{}
		guard := NewGuard(&fakeMatches{}, seclog)

		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindOwnedEntity, Entity: "story", ResourceID: 42})
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})
}

func TestGuardMatchParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("matched pair is allowed", func(t *testing.T) {
		guard := NewGuard(&fakeMatches{pairs: map[[2]int64]bool{{1, 2}: true}}, NopSecurityLogger{})

		err := guard.AuthorizeAccess(ctx, 1, AccessRequest{Kind: KindMatchParticipant, ResourceID: 2})
		assert.NoError(t, err)
	})

	t.Run("unmatched pair is denied", func(t *testing.T) {
		seclog := &recordingSeclog{}
		guard := NewGuard(&fakeMatches{}, seclog)

		err := guard.AuthorizeAccess(ctx, 1, AccessRequest{Kind: KindMatchParticipant, ResourceID: 3})
		assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
		assert.Len(t, seclog.events, 1)
	})

	t.Run("detector failure fails closed", func(t *testing.T) {
		guard := NewGuard(&fakeMatches{err: errors.New("connection reset")}, NopSecurityLogger{})

		err := guard.AuthorizeAccess(ctx, 1, AccessRequest{Kind: KindMatchParticipant, ResourceID: 2})
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})
}

func TestGuardMalformedRequests(t *testing.T) {
	ctx := context.Background()
	seclog := &recordingSeclog{}
	guard := NewGuard(&fakeMatches{}, seclog)

	t.Run("missing resource ID is malformed not denied", func(t *testing.T) {
		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: KindSelf})
		assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
		assert.Empty(t, seclog.events, "malformed requests are not security events")
	})

	t.Run("unknown kind fails closed", func(t *testing.T) {
		err := guard.AuthorizeAccess(ctx, 7, AccessRequest{Kind: ResourceKind("mystery"), ResourceID: 1})
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})
}
