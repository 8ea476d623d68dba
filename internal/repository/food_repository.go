package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
)

// FoodRepository encapsulates dish persistence. All lookups are scoped to
// the owning subject; ownership is part of the query, not an afterthought.
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) error
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id, ownerID string) error
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Food, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Food, error)
}

type foodRepository struct {
	pool *pgxpool.Pool
}

// NewFoodRepository instantiates repository.
func NewFoodRepository(pool *pgxpool.Pool) FoodRepository {
	return &foodRepository{pool: pool}
}

func (r *foodRepository) Create(ctx context.Context, food *domain.Food) error {
	const query = `
        INSERT INTO foods (owner_id, name, description, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		food.OwnerID,
		food.Name,
		food.Description,
		food.Price,
	).Scan(&food.ID, &food.CreatedAt, &food.UpdatedAt)
}

func (r *foodRepository) Update(ctx context.Context, food *domain.Food) error {
	const query = `
        UPDATE foods SET name=$1, description=$2, price=$3, updated_at=NOW()
        WHERE id=$4 AND owner_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		food.Name,
		food.Description,
		food.Price,
		food.ID,
		food.OwnerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *foodRepository) Delete(ctx context.Context, id, ownerID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM foods WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *foodRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Food, error) {
	const query = `
        SELECT id, owner_id, name, description, price, created_at, updated_at
        FROM foods WHERE id=$1 AND owner_id=$2`

	var food domain.Food
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&food.ID,
		&food.OwnerID,
		&food.Name,
		&food.Description,
		&food.Price,
		&food.CreatedAt,
		&food.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Food, error) {
	const query = `
        SELECT id, owner_id, name, description, price, created_at, updated_at
        FROM foods WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		var food domain.Food
		if err := rows.Scan(
			&food.ID,
			&food.OwnerID,
			&food.Name,
			&food.Description,
			&food.Price,
			&food.CreatedAt,
			&food.UpdatedAt,
		); err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	return foods, rows.Err()
}
