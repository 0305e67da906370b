// internal/relationship/repository.go
// Data access for like, dislike, and block edges.

package relationship

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// Repository defines all database operations for relationship edges
type Repository interface {
	// Like edges
	CreateLike(ctx context.Context, senderID, receiverID int64) error
	LikeExists(ctx context.Context, senderID, receiverID int64) (bool, error)
	FindLikesBetween(ctx context.Context, userA, userB int64) ([]*LikeEdge, error)

	// Dislike edges
	CreateDislike(ctx context.Context, senderID, receiverID int64) error

	// Block edges
	CreateBlock(ctx context.Context, senderID, receiverID int64) error
	BlockExistsBetween(ctx context.Context, userA, userB int64) (bool, error)

	// Derived views
	ListMatches(ctx context.Context, userID int64) ([]*MatchView, error)
	ListLikers(ctx context.Context, userID int64) ([]*UserSummary, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// CreateLike inserts a like edge. Two concurrent submissions for the same
// ordered pair race on the unique index; the loser gets a classified
// duplicate error that callers recover into an "already liked" outcome.
func (r *postgresRepository) CreateLike(ctx context.Context, senderID, receiverID int64) error {
	query := `INSERT INTO likes (sender_id, receiver_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, senderID, receiverID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.New(apperrors.KindDuplicateRelationship, "already liked")
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

func (r *postgresRepository) LikeExists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE sender_id = $1 AND receiver_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, senderID, receiverID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// FindLikesBetween fetches the edges for both orderings of the pair in one
// round trip. The match detector needs at most these two rows.
func (r *postgresRepository) FindLikesBetween(ctx context.Context, userA, userB int64) ([]*LikeEdge, error) {
	var edges []*LikeEdge
	query := `
		SELECT id, sender_id, receiver_id, created_at
		FROM likes
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)`

	err := r.db.SelectContext(ctx, &edges, query, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to find likes between users: %w", err)
	}

	return edges, nil
}

func (r *postgresRepository) CreateDislike(ctx context.Context, senderID, receiverID int64) error {
	query := `INSERT INTO dislikes (sender_id, receiver_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, senderID, receiverID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.New(apperrors.KindDuplicateRelationship, "already disliked")
		}
		return fmt.Errorf("failed to create dislike: %w", err)
	}

	return nil
}

func (r *postgresRepository) CreateBlock(ctx context.Context, senderID, receiverID int64) error {
	query := `INSERT INTO blocks (sender_id, receiver_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, senderID, receiverID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.New(apperrors.KindDuplicateRelationship, "already blocked")
		}
		return fmt.Errorf("failed to create block: %w", err)
	}

	return nil
}

func (r *postgresRepository) BlockExistsBetween(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM blocks
			WHERE (sender_id = $1 AND receiver_id = $2)
			   OR (sender_id = $2 AND receiver_id = $1)
		)`

	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}

	return exists, nil
}

// ListMatches derives the caller's matches live from reciprocal like pairs.
// There is no matches table to go stale.
func (r *postgresRepository) ListMatches(ctx context.Context, userID int64) ([]*MatchView, error) {
	query := `
		SELECT l1.receiver_id,
		       GREATEST(l1.created_at, l2.created_at) AS matched_at,
		       u.id, u.username,
		       COALESCE(p.display_name, u.username) AS display_name,
		       p.photo_url
		FROM likes l1
		JOIN likes l2
		  ON l2.sender_id = l1.receiver_id
		 AND l2.receiver_id = l1.sender_id
		JOIN users u ON u.id = l1.receiver_id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE l1.sender_id = $1
		  AND u.status = 'active'
		ORDER BY matched_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*MatchView
	for rows.Next() {
		var match MatchView
		var user UserSummary

		err := rows.Scan(
			&match.UserID, &match.MatchedAt,
			&user.ID, &user.Username, &user.DisplayName, &user.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		match.ChannelID = ChannelID(userID, match.UserID)
		match.User = &user
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

// ListLikers returns users who liked userID without a like back yet,
// excluding anyone the user passed on and non-active accounts.
func (r *postgresRepository) ListLikers(ctx context.Context, userID int64) ([]*UserSummary, error) {
	var likers []*UserSummary
	query := `
		SELECT u.id, u.username,
		       COALESCE(p.display_name, u.username) AS display_name,
		       p.photo_url
		FROM likes l
		JOIN users u ON u.id = l.sender_id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE l.receiver_id = $1
		  AND u.status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM likes mine
			WHERE mine.sender_id = $1 AND mine.receiver_id = l.sender_id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM dislikes d
			WHERE d.sender_id = $1 AND d.receiver_id = l.sender_id
		  )
		ORDER BY l.created_at DESC`

	err := r.db.SelectContext(ctx, &likers, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}

	return likers, nil
}
