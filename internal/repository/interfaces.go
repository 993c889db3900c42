package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/crossr1/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a conversion record does not exist
var ErrNotFound = errors.New("conversion not found")

// ConversionRepository defines the interface for conversion history operations
type ConversionRepository interface {
	Create(ctx context.Context, conversion *models.Conversion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversion, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Conversion, error)
}
