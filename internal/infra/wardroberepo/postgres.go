package wardroberepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
)

// PostgresRepository implements wardrobe.Repository using pgx.
// Embeddings live in a pgvector column next to the item row.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert persists a new wardrobe item. A nil embedding stores NULL, which
// excludes the row from similarity search.
func (r *PostgresRepository) Insert(ctx context.Context, item wardrobe.Item, embedding []float32) (wardrobe.Item, error) {
	var vector any
	if embedding != nil {
		vector = pgvector.NewVector(embedding)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wardrobe_items
			(id, category, color, pattern, warmth, impermeability, layering, description, image_key, created_at, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, item.ID, string(item.Category), item.Color, string(item.Pattern),
		item.Warmth, item.Impermeability, item.Layering,
		item.Description, item.ImageKey, item.CreatedAt, vector)
	if err != nil {
		return wardrobe.Item{}, err
	}
	return item, nil
}

// Remove deletes the row; removing an unknown id is not an error here, the
// service checks existence first.
func (r *PostgresRepository) Remove(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wardrobe_items WHERE id = $1`, id)
	return err
}

// List returns every stored item ordered by insertion time.
func (r *PostgresRepository) List(ctx context.Context) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, color, pattern, warmth, impermeability, layering, description, image_key, created_at
		FROM wardrobe_items
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []wardrobe.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SearchNearest returns the closest pgvector matches to the query embedding.
func (r *PostgresRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]wardrobe.Match, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, color, pattern, warmth, impermeability, layering, description, image_key, created_at,
		       embedding <-> $1 AS distance
		FROM wardrobe_items
		WHERE embedding IS NOT NULL
		ORDER BY embedding <-> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []wardrobe.Match
	for rows.Next() {
		var distance float64
		item, err := scanItem(rows, &distance)
		if err != nil {
			return nil, err
		}
		matches = append(matches, wardrobe.Match{Item: item, Distance: distance})
	}
	return matches, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, extras ...any) (wardrobe.Item, error) {
	var (
		item      wardrobe.Item
		category  string
		pattern   string
		createdAt time.Time
	)
	args := []any{
		&item.ID, &category, &item.Color, &pattern,
		&item.Warmth, &item.Impermeability, &item.Layering,
		&item.Description, &item.ImageKey, &createdAt,
	}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return wardrobe.Item{}, err
	}
	item.Category = outfit.Category(category)
	item.Pattern = outfit.Pattern(pattern)
	item.CreatedAt = createdAt
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
