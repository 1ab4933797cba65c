package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	errors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

// OrderController handles checkout and order tracking. Guests can place
// orders; reading and status changes go through the guard.
type OrderController struct {
	Repo       store.RepositoryManager
	ContextKey string
	Logger     auth.Logger
}

// OrderItemRequest is one line of a checkout payload. The price is the
// snapshot shown to the buyer at checkout time.
type OrderItemRequest struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// Validate will run validation rules
func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.ProductName, validation.Required),
		validation.Field(&r.ProductPrice, validation.Required, validation.Min(0.01)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// OrderRequest payload
type OrderRequest struct {
	Items              []OrderItemRequest `json:"items"`
	ShippingName       string             `json:"shipping_name"`
	ShippingPhone      string             `json:"shipping_phone"`
	ShippingAddress    string             `json:"shipping_address"`
	ShippingCity       string             `json:"shipping_city"`
	ShippingPostalCode string             `json:"shipping_postal_code,omitempty"`
	Notes              string             `json:"notes,omitempty"`
}

// Validate will run validation rules
func (r OrderRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
			validation.Field(&r.ShippingName, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.ShippingPhone, validation.Required, validation.By(validatePhone)),
			validation.Field(&r.ShippingAddress, validation.Required, validation.Length(1, 500)),
			validation.Field(&r.ShippingCity, validation.Required, validation.Length(1, 100)),
		)
	}, "Invalid order payload")
}

func (r OrderRequest) toModel() *store.Order {
	items := make([]store.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, store.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}

	order := &store.Order{
		Items:              items,
		ShippingName:       r.ShippingName,
		ShippingPhone:      r.ShippingPhone,
		ShippingAddress:    r.ShippingAddress,
		ShippingCity:       r.ShippingCity,
		ShippingPostalCode: r.ShippingPostalCode,
		Notes:              r.Notes,
	}
	order.Total = order.ComputeTotal()

	return order
}

// StatusRequest payload
type StatusRequest struct {
	Status string `json:"status"`
}

// Validate will run validation rules
func (r StatusRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Status, validation.Required, validation.By(func(value any) error {
				s, _ := value.(string)
				if !store.ValidOrderStatus(s) {
					return errors.New("must be a known order status", errors.CategoryValidation)
				}
				return nil
			})),
		)
	}, "Invalid status payload")
}

func (o *OrderController) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c, o.ContextKey)
	if !ok {
		return auth.ErrUnauthenticated
	}

	uid, err := uuid.Parse(claims.Subject())
	if err != nil {
		return auth.ErrTokenMalformed
	}

	return o.placeOrder(c, &uid)
}

// CreateGuest places an order with no account attached.
func (o *OrderController) CreateGuest(c *fiber.Ctx) error {
	return o.placeOrder(c, nil)
}

func (o *OrderController) placeOrder(c *fiber.Ctx, userID *uuid.UUID) error {
	payload := new(OrderRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	for _, item := range payload.Items {
		if err := item.Validate(); err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "Invalid order item").
				WithCode(errors.CodeBadRequest)
		}
	}

	order := payload.toModel()
	order.UserID = userID

	record, err := o.Repo.Orders().Place(c.Context(), order)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List returns the caller's orders, or every order for an admin.
func (o *OrderController) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c, o.ContextKey)
	if !ok {
		return auth.ErrUnauthenticated
	}

	var records []*store.Order
	var err error

	if claims.IsAdmin() {
		records, err = o.Repo.Orders().ListAll(c.Context())
	} else {
		records, err = o.Repo.Orders().ListByUser(c.Context(), claims.Subject())
	}
	if err != nil {
		return err
	}

	if records == nil {
		records = []*store.Order{}
	}

	return c.JSON(records)
}

// Get returns a single order; only the owner or an admin may read it.
// A guest order has no owner, so only admins can read those.
func (o *OrderController) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c, o.ContextKey)
	if !ok {
		return auth.ErrUnauthenticated
	}

	record, err := o.Repo.Orders().GetByOrderID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	if !claims.IsAdmin() {
		if record.UserID == nil || record.UserID.String() != claims.Subject() {
			return auth.ErrForbidden
		}
	}

	return c.JSON(record)
}

func (o *OrderController) UpdateStatus(c *fiber.Ctx) error {
	payload := &StatusRequest{Status: c.Query("status")}

	if payload.Status == "" {
		if err := c.BodyParser(payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
				WithCode(errors.CodeBadRequest)
		}
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := o.Repo.Orders().UpdateStatus(c.Context(), c.Params("id"), payload.Status); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Status updated"})
}
