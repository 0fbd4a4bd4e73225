package repository

import (
	"context"

	"app/internal/domain/model"
)

type ContactRepository interface {
	Create(ctx context.Context, s model.ContactSubmission) (int64, error)
}
