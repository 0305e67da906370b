// internal/profile/repository.go
// Data access for profiles, photos, and preferences

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// Repository defines all database operations for profiles
type Repository interface {
	// Profiles
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error

	// Photos
	CreatePhoto(ctx context.Context, photo *Photo) error
	GetPhoto(ctx context.Context, photoID int64) (*Photo, error)
	ListPhotos(ctx context.Context, userID int64) ([]*Photo, error)
	CountPhotos(ctx context.Context, userID int64) (int, error)
	DeletePhoto(ctx context.Context, photoID int64) error

	// Preferences
	GetPreferences(ctx context.Context, userID int64) (*Preferences, error)
	UpsertPreferences(ctx context.Context, prefs *Preferences) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, birthdate, gender, bio, city,
			latitude, longitude, interests, photo_url, completion_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			birthdate = EXCLUDED.birthdate,
			gender = EXCLUDED.gender,
			bio = EXCLUDED.bio,
			city = EXCLUDED.city,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			interests = EXCLUDED.interests,
			photo_url = EXCLUDED.photo_url,
			completion_score = EXCLUDED.completion_score,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Birthdate, profile.Gender,
		profile.Bio, profile.City, profile.Latitude, profile.Longitude,
		profile.Interests, profile.PhotoURL, profile.CompletionScore,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// Photo methods

func (r *postgresRepository) CreatePhoto(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO photos (user_id, url, position)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, photo.UserID, photo.URL, photo.Position).
		Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetPhoto(ctx context.Context, photoID int64) (*Photo, error) {
	var photo Photo
	query := `SELECT * FROM photos WHERE id = $1`

	err := r.db.GetContext(ctx, &photo, query, photoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "photo not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return &photo, nil
}

func (r *postgresRepository) ListPhotos(ctx context.Context, userID int64) ([]*Photo, error) {
	var photos []*Photo
	query := `SELECT * FROM photos WHERE user_id = $1 ORDER BY position ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &photos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	return photos, nil
}

func (r *postgresRepository) CountPhotos(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM photos WHERE user_id = $1`

	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) DeletePhoto(ctx context.Context, photoID int64) error {
	query := `DELETE FROM photos WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	return nil
}

// Preference methods

func (r *postgresRepository) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	var prefs Preferences
	query := `SELECT * FROM preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, &prefs, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "preferences not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return &prefs, nil
}

func (r *postgresRepository) UpsertPreferences(ctx context.Context, prefs *Preferences) error {
	query := `
		INSERT INTO preferences (user_id, show_gender, min_age, max_age, max_distance_km)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			show_gender = EXCLUDED.show_gender,
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			max_distance_km = EXCLUDED.max_distance_km,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at`

	err := r.db.QueryRowxContext(
		ctx, query,
		prefs.UserID, prefs.ShowGender, prefs.MinAge, prefs.MaxAge, prefs.MaxDistanceKM,
	).Scan(&prefs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// PhotoOwners adapts the repository to the guard's owner-lookup interface
type PhotoOwners struct {
	repo Repository
}

// NewPhotoOwners creates the owner lookup used by the authorization guard
func NewPhotoOwners(repo Repository) *PhotoOwners {
	return &PhotoOwners{repo: repo}
}

// OwnerOf returns the owning user of a photo
func (o *PhotoOwners) OwnerOf(ctx context.Context, photoID int64) (int64, error) {
	photo, err := o.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return 0, err
	}
	return photo.UserID, nil
}
