package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/crossr1/internal/repository"
	"github.com/RMahshie/crossr1/pkg/models"
	"github.com/google/uuid"
)

// PostgresConversionRepository implements ConversionRepository for PostgreSQL
type PostgresConversionRepository struct {
	db *sql.DB
}

// NewPostgresConversionRepository creates a new PostgreSQL conversion repository
func NewPostgresConversionRepository(db *sql.DB) repository.ConversionRepository {
	return &PostgresConversionRepository{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new conversion record
func (r *PostgresConversionRepository) Create(ctx context.Context, conversion *models.Conversion) error {
	channels, err := json.Marshal(nonNil(conversion.Channels))
	if err != nil {
		return fmt.Errorf("failed to marshal channels: %w", err)
	}
	keys, err := json.Marshal(nonNil(conversion.StorageKeys))
	if err != nil {
		return fmt.Errorf("failed to marshal storage keys: %w", err)
	}

	query := `
		INSERT INTO conversions (id, source_name, multi_channel, channels, storage_keys, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		conversion.ID,
		conversion.SourceName,
		conversion.MultiChannel,
		string(channels),
		string(keys),
		conversion.CreatedAt)

	return err
}

// GetByID retrieves a conversion by ID
func (r *PostgresConversionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversion, error) {
	query := `
		SELECT id, source_name, multi_channel, channels, storage_keys, created_at
		FROM conversions
		WHERE id = $1`

	conversion, err := scanConversion(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return conversion, nil
}

// ListRecent retrieves the most recent conversions, newest first
func (r *PostgresConversionRepository) ListRecent(ctx context.Context, limit int) ([]*models.Conversion, error) {
	query := `
		SELECT id, source_name, multi_channel, channels, storage_keys, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversions := []*models.Conversion{}
	for rows.Next() {
		conversion, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, conversion)
	}

	return conversions, rows.Err()
}

func scanConversion(row rowScanner) (*models.Conversion, error) {
	var conversion models.Conversion
	var channels, keys []byte

	err := row.Scan(
		&conversion.ID,
		&conversion.SourceName,
		&conversion.MultiChannel,
		&channels,
		&keys,
		&conversion.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(channels, &conversion.Channels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal channels: %w", err)
	}
	if err := json.Unmarshal(keys, &conversion.StorageKeys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal storage keys: %w", err)
	}

	return &conversion, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
