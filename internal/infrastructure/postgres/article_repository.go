package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación de ArticleRepository (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (code, name, supplier_id, minimum_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, a.Code, a.Name, a.SupplierID, a.MinimumStock).Scan(&a.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NotFound("proveedor %d", a.SupplierID)
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	query := `SELECT code, name, supplier_id, minimum_stock, created_at FROM articles WHERE code = $1`
	var a entity.Article
	err := r.q.QueryRow(ctx, query, code).Scan(&a.Code, &a.Name, &a.SupplierID, &a.MinimumStock, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, supplier_id, minimum_stock, created_at FROM articles ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var out []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.Code, &a.Name, &a.SupplierID, &a.MinimumStock, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
