package users

import (
	"context"

	"github.com/dmitrijs2005/doclife/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	// Delete removes the user together with all of their documents.
	Delete(ctx context.Context, id string) error
}
