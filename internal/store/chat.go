package store

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ChatMessages is the chat feed store contract
type ChatMessages interface {
	repository.Repository[*ChatMessage]

	Post(ctx context.Context, message *ChatMessage) (*ChatMessage, error)
	Recent(ctx context.Context, limit int) ([]*ChatMessage, error)
}

type chatMessages struct {
	repository.Repository[*ChatMessage]
	db *bun.DB
}

var _ ChatMessages = (*chatMessages)(nil)

// NewChatMessagesRepository builds the chat repository over bun
func NewChatMessagesRepository(db *bun.DB) ChatMessages {
	repo := repository.NewRepository[*ChatMessage](db, repository.ModelHandlers[*ChatMessage]{
		NewRecord: func() *ChatMessage { return &ChatMessage{} },
		GetID: func(m *ChatMessage) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *ChatMessage, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
	})

	return &chatMessages{
		Repository: repo,
		db:         db,
	}
}

func (r *chatMessages) Post(ctx context.Context, message *ChatMessage) (*ChatMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	// current_timestamp only has second precision, which is too coarse
	// to keep a busy feed ordered
	if message.Timestamp == nil {
		now := time.Now().UTC()
		message.Timestamp = &now
	}
	return r.Repository.Create(ctx, message)
}

// Recent returns the last `limit` messages, oldest first, so clients
// can render the feed top to bottom.
func (r *chatMessages) Recent(ctx context.Context, limit int) ([]*ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []*ChatMessage
	err := r.db.NewSelect().
		Model(&records).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	// newest-first from the query, reversed for display order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}
