package feedbackrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
)

// PostgresRepository implements evaluation.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts one feedback row.
func (r *PostgresRepository) Save(ctx context.Context, fb evaluation.Feedback) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recommendation_feedback
			(id, city, outfit_type, relevance, satisfaction, diversity, personalization, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, fb.ID, fb.City, fb.OutfitType, fb.Relevance, fb.Satisfaction, fb.Diversity, fb.Personalization, fb.Comment, fb.CreatedAt)
	return err
}

// List returns all feedback ordered by submission time.
func (r *PostgresRepository) List(ctx context.Context) ([]evaluation.Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, city, outfit_type, relevance, satisfaction, diversity, personalization, comment, created_at
		FROM recommendation_feedback
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []evaluation.Feedback
	for rows.Next() {
		var fb evaluation.Feedback
		if err := rows.Scan(&fb.ID, &fb.City, &fb.OutfitType, &fb.Relevance, &fb.Satisfaction,
			&fb.Diversity, &fb.Personalization, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, fb)
	}
	return entries, rows.Err()
}

var _ evaluation.Repository = (*PostgresRepository)(nil)
