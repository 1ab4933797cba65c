package store

import (
	"context"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductFilter narrows a catalog listing. Zero values mean "no
// constraint".
type ProductFilter struct {
	Category     string
	Search       string
	DiscountOnly bool
}

// Products is the catalog store contract
type Products interface {
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	GetByProductID(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, product *Product) (*Product, error)
	Replace(ctx context.Context, id string, product *Product) (*Product, error)
	Remove(ctx context.Context, id string) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type products struct {
	repository.Repository[*Product]
	db *bun.DB
}

var _ Products = (*products)(nil)

// NewProductsRepository builds the catalog repository over bun
func NewProductsRepository(db *bun.DB) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &products{
		Repository: repo,
		db:         db,
	}
}

func (r *products) List(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	var records []*Product

	q := r.db.NewSelect().Model(&records)

	if filter.Category != "" {
		q = q.Where("?TableAlias.category = ?", filter.Category)
	}

	if filter.Search != "" {
		q = q.Where("LOWER(?TableAlias.name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if filter.DiscountOnly {
		q = q.Where("?TableAlias.discount_percentage > 0")
	}

	if err := q.Order("created_at DESC").Limit(1000).Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *products) GetByProductID(ctx context.Context, id string) (*Product, error) {
	record := &Product{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"product_id": id,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *products) Save(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.Repository.Create(ctx, product)
}

// Replace overwrites the stored product with the given fields, keeping
// the id and creation time.
func (r *products) Replace(ctx context.Context, id string, product *Product) (*Product, error) {
	existing, err := r.GetByProductID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if _, err := r.db.NewUpdate().
		Model(product).
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *products) Remove(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"product_id": id,
			})
	}

	return nil
}

func (r *products) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.NewSelect().
		Model((*Product)(nil)).
		ColumnExpr("DISTINCT ?TableAlias.category").
		Order("category ASC").
		Scan(ctx, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
