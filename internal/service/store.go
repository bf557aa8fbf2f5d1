package service

import (
	"context"

	"github.com/hjhuang/identity-service/internal/models"
)

// UserStore is the credential store boundary the services depend on. It is
// implemented by repository.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.Account) error
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	ListUsers(ctx context.Context) ([]models.Account, error)
	UpdateUser(ctx context.Context, id int64, p models.UpdateParams) (*models.Account, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// Notifier delivers out-of-band notices to users. Delivery is best-effort;
// failures never affect the originating request.
type Notifier interface {
	SendWelcome(to, username string) error
}
