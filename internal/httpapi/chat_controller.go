package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	errors "github.com/goliatone/go-errors"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

// ChatController handles the public chat feed. There is no
// authentication on these endpoints; nicknames are self-reported.
type ChatController struct {
	Repo   store.RepositoryManager
	Logger auth.Logger
}

// ChatMessageRequest payload
type ChatMessageRequest struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

// Validate will run validation rules
func (r ChatMessageRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Nickname, validation.Required, validation.Length(1, 50)),
			validation.Field(&r.Message, validation.Required, validation.Length(1, 1000)),
		)
	}, "Invalid chat message payload")
}

func (h *ChatController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	records, err := h.Repo.ChatMessages().Recent(c.Context(), limit)
	if err != nil {
		return err
	}

	if records == nil {
		records = []*store.ChatMessage{}
	}

	return c.JSON(records)
}

func (h *ChatController) Post(c *fiber.Ctx) error {
	payload := new(ChatMessageRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := h.Repo.ChatMessages().Post(c.Context(), &store.ChatMessage{
		Nickname: payload.Nickname,
		Message:  payload.Message,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}
