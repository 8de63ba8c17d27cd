package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reclip-backend/internal/models"
)

type GenerationRepo struct {
	pool *pgxpool.Pool
}

func NewGenerationRepo(pool *pgxpool.Pool) *GenerationRepo {
	return &GenerationRepo{pool: pool}
}

func (r *GenerationRepo) Create(ctx context.Context, g *models.Generation) error {
	query := `INSERT INTO generations (id, source_url, platform, status)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		g.ID, g.SourceURL, g.Platform, g.Status,
	).Scan(&g.CreatedAt)
}

func (r *GenerationRepo) MarkCompleted(ctx context.Context, id uuid.UUID, platform string, metadataJSON, resultJSON json.RawMessage) error {
	query := `UPDATE generations
		SET status = 'completed', platform = $2, metadata_json = $3, result_json = $4, completed_at = NOW()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, platform, metadataJSON, resultJSON)
	return err
}

func (r *GenerationRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `UPDATE generations
		SET status = 'failed', error_message = $2, completed_at = NOW()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, errorMessage)
	return err
}

func (r *GenerationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Generation, error) {
	g := &models.Generation{}
	query := `SELECT id, source_url, platform, status, metadata_json, result_json, error_message, created_at, completed_at
		FROM generations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.SourceURL, &g.Platform, &g.Status,
		&g.MetadataJSON, &g.ResultJSON, &g.ErrorMessage,
		&g.CreatedAt, &g.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GenerationRepo) List(ctx context.Context, limit, offset int) ([]*models.Generation, error) {
	query := `SELECT id, source_url, platform, status, error_message, created_at, completed_at
		FROM generations ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var generations []*models.Generation
	for rows.Next() {
		g := &models.Generation{}
		if err := rows.Scan(
			&g.ID, &g.SourceURL, &g.Platform, &g.Status,
			&g.ErrorMessage, &g.CreatedAt, &g.CompletedAt,
		); err != nil {
			return nil, err
		}
		generations = append(generations, g)
	}
	return generations, rows.Err()
}
