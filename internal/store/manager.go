package store

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() auth.Users
	Products() Products
	Orders() Orders
	ChatMessages() ChatMessages

	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db       *bun.DB
	users    auth.Users
	products Products
	orders   Orders
	chat     ChatMessages
}

// NewRepositoryManager wires every repository over the shared DB handle
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    auth.NewUsersRepository(db),
		products: NewProductsRepository(db),
		orders:   NewOrdersRepository(db),
		chat:     NewChatMessagesRepository(db),
	}
}

func (m *mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.products == nil {
		return errors.New("repository products should be initialized")
	}

	if m.orders == nil {
		return errors.New("repository orders should be initialized")
	}

	if m.chat == nil {
		return errors.New("repository chat messages should be initialized")
	}

	return nil
}

func (m *mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *mngr) Users() auth.Users          { return m.users }
func (m *mngr) Products() Products         { return m.products }
func (m *mngr) Orders() Orders             { return m.orders }
func (m *mngr) ChatMessages() ChatMessages { return m.chat }
