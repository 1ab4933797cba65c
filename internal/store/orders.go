package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Orders is the order store contract
type Orders interface {
	repository.Repository[*Order]

	Place(ctx context.Context, order *Order) (*Order, error)
	GetByOrderID(ctx context.Context, id string) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
}

type orders struct {
	repository.Repository[*Order]
	db *bun.DB
}

var _ Orders = (*orders)(nil)

// NewOrdersRepository builds the orders repository over bun
func NewOrdersRepository(db *bun.DB) Orders {
	repo := repository.NewRepository[*Order](db, repository.ModelHandlers[*Order]{
		NewRecord: func() *Order { return &Order{} },
		GetID: func(o *Order) uuid.UUID {
			if o == nil {
				return uuid.Nil
			}
			return o.ID
		},
		SetID: func(o *Order, id uuid.UUID) {
			if o != nil {
				o.ID = id
			}
		},
	})

	return &orders{
		Repository: repo,
		db:         db,
	}
}

// Place persists a new order. The total has already been recomputed by
// the caller; defaults are filled here so every stored order is
// complete.
func (r *orders) Place(ctx context.Context, order *Order) (*Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = OrderStatusPending
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = PaymentCashOnDelivery
	}

	return r.Repository.Create(ctx, order)
}

func (r *orders) GetByOrderID(ctx context.Context, id string) (*Order, error) {
	record := &Order{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"order_id": id,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *orders) ListAll(ctx context.Context) ([]*Order, error) {
	var records []*Order
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(1000).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *orders) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	var records []*Order
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC").
		Limit(1000).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *orders) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	res, err := r.db.NewUpdate().
		Model((*Order)(nil)).
		Set("status = ?", status).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"order_id": id,
			})
	}

	return nil
}
