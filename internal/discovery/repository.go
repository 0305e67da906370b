// internal/discovery/repository.go
// Candidate query for the discovery feed.

package discovery

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines database operations for discovery
type Repository interface {
	FindCandidates(ctx context.Context, filters *Filters) ([]*Candidate, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// FindCandidates returns active profiles matching the seeker's preferences,
// excluding the seeker, anyone they already liked or passed on, and anyone
// blocked in either direction.
func (r *postgresRepository) FindCandidates(ctx context.Context, filters *Filters) ([]*Candidate, error) {
	query := `
		SELECT u.id AS user_id, u.username,
		       COALESCE(p.display_name, u.username) AS display_name,
		       DATE_PART('year', AGE(p.birthdate))::int AS age,
		       p.gender, p.city, p.bio, p.photo_url, p.interests
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE u.id <> $1
		  AND u.status = 'active'
		  AND p.birthdate IS NOT NULL
		  AND DATE_PART('year', AGE(p.birthdate)) BETWEEN $2 AND $3
		  AND ($4::text IS NULL OR p.gender = $4)
		  AND NOT EXISTS (
			SELECT 1 FROM likes l
			WHERE l.sender_id = $1 AND l.receiver_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM dislikes d
			WHERE d.sender_id = $1 AND d.receiver_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM blocks b
			WHERE (b.sender_id = $1 AND b.receiver_id = u.id)
			   OR (b.sender_id = u.id AND b.receiver_id = $1)
		  )
		  AND ($5::float8 IS NULL OR $7 <= 0
		       OR p.latitude IS NULL OR p.longitude IS NULL
		       OR 6371 * acos(LEAST(1.0,
		            cos(radians($5)) * cos(radians(p.latitude))
		            * cos(radians(p.longitude) - radians($6::float8))
		            + sin(radians($5)) * sin(radians(p.latitude)))) <= $7)
		ORDER BY p.completion_score DESC, u.id
		LIMIT $8 OFFSET $9`

	var candidates []*Candidate
	err := r.db.SelectContext(
		ctx, &candidates, query,
		filters.SeekerID, filters.MinAge, filters.MaxAge,
		filters.ShowGender, filters.SeekerLat, filters.SeekerLng,
		filters.MaxDistanceKM, filters.Limit, filters.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	return candidates, nil
}
