package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
	"github.com/heartlinkapp/heartlink-backend/internal/profile"
)

type capturingRepo struct {
	filters *Filters
}

func (r *capturingRepo) FindCandidates(_ context.Context, filters *Filters) ([]*Candidate, error) {
	r.filters = filters
	return []*Candidate{}, nil
}

type fakePrefs struct {
	prefs   *profile.Preferences
	profile *profile.Profile
}

func (f *fakePrefs) GetPreferences(context.Context, int64) (*profile.Preferences, error) {
	return f.prefs, nil
}

func (f *fakePrefs) GetProfile(context.Context, int64) (*profile.Profile, error) {
	if f.profile == nil {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "profile not found")
	}
	return f.profile, nil
}

func TestGetCandidates(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{PageSize: 25, MinAge: 18, MaxAge: 100}

	t.Run("seeker preferences shape the query", func(t *testing.T) {
		repo := &capturingRepo{}
		gender := "woman"
		svc := NewService(repo, &fakePrefs{prefs: &profile.Preferences{
			ShowGender: &gender,
			MinAge:     25,
			MaxAge:     35,
		}}, cfg)

		_, err := svc.GetCandidates(ctx, 7, 10, 20)
		require.NoError(t, err)

		require.NotNil(t, repo.filters)
		assert.Equal(t, int64(7), repo.filters.SeekerID)
		require.NotNil(t, repo.filters.ShowGender)
		assert.Equal(t, "woman", *repo.filters.ShowGender)
		assert.Equal(t, 25, repo.filters.MinAge)
		assert.Equal(t, 35, repo.filters.MaxAge)
		assert.Equal(t, 10, repo.filters.Limit)
		assert.Equal(t, 20, repo.filters.Offset)
	})

	t.Run("limit and offset are clamped", func(t *testing.T) {
		repo := &capturingRepo{}
		svc := NewService(repo, &fakePrefs{prefs: &profile.Preferences{MinAge: 18, MaxAge: 100}}, cfg)

		_, err := svc.GetCandidates(ctx, 7, 9999, -5)
		require.NoError(t, err)

		assert.Equal(t, cfg.PageSize, repo.filters.Limit)
		assert.Equal(t, 0, repo.filters.Offset)
	})

	t.Run("seeker location enables the distance filter", func(t *testing.T) {
		repo := &capturingRepo{}
		lat, lng := 51.5, -0.12
		svc := NewService(repo, &fakePrefs{
			prefs:   &profile.Preferences{MinAge: 18, MaxAge: 100, MaxDistanceKM: 50},
			profile: &profile.Profile{UserID: 7, Latitude: &lat, Longitude: &lng},
		}, cfg)

		_, err := svc.GetCandidates(ctx, 7, 0, 0)
		require.NoError(t, err)

		require.NotNil(t, repo.filters.SeekerLat)
		assert.Equal(t, 50, repo.filters.MaxDistanceKM)
	})

	t.Run("no stored profile means no distance filter", func(t *testing.T) {
		repo := &capturingRepo{}
		svc := NewService(repo, &fakePrefs{
			prefs: &profile.Preferences{MinAge: 18, MaxAge: 100, MaxDistanceKM: 50},
		}, cfg)

		_, err := svc.GetCandidates(ctx, 7, 0, 0)
		require.NoError(t, err)

		assert.Nil(t, repo.filters.SeekerLat)
	})

	t.Run("ages outside policy bounds are clamped", func(t *testing.T) {
		repo := &capturingRepo{}
		svc := NewService(repo, &fakePrefs{prefs: &profile.Preferences{MinAge: 12, MaxAge: 300}}, cfg)

		_, err := svc.GetCandidates(ctx, 7, 0, 0)
		require.NoError(t, err)

		assert.Equal(t, 18, repo.filters.MinAge)
		assert.Equal(t, 100, repo.filters.MaxAge)
	})
}
