package notification

import (
	"context"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

type authDirectory struct {
	repo auth.Repository
}

// NewAuthDirectory resolves recipients from the accounts table
func NewAuthDirectory(repo auth.Repository) UserDirectory {
	return &authDirectory{repo: repo}
}

func (d *authDirectory) GetRecipient(ctx context.Context, userID int64) (*Recipient, error) {
	user, err := d.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Recipient{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}, nil
}
