package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	errors "github.com/goliatone/go-errors"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

// ProductController handles the catalog endpoints. Reads are public,
// writes require the admin role.
type ProductController struct {
	Repo   store.RepositoryManager
	Logger auth.Logger
}

// ProductRequest payload
type ProductRequest struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	PriceEUR           float64 `json:"price_eur"`
	Category           string  `json:"category"`
	ImageURL           string  `json:"image_url"`
	Stock              int     `json:"stock"`
	DiscountPercentage int     `json:"discount_percentage"`
}

// Validate will run validation rules
func (r ProductRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
			validation.Field(&r.Price, validation.Required, validation.Min(0.01)),
			validation.Field(&r.PriceEUR, validation.Min(0.0)),
			validation.Field(&r.Stock, validation.Min(0)),
			validation.Field(&r.DiscountPercentage, validation.Min(0), validation.Max(100)),
		)
	}, "Invalid product payload")
}

func (r ProductRequest) toModel() *store.Product {
	return &store.Product{
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		PriceEUR:           r.PriceEUR,
		Category:           r.Category,
		ImageURL:           r.ImageURL,
		Stock:              r.Stock,
		DiscountPercentage: r.DiscountPercentage,
	}
}

func (p *ProductController) List(c *fiber.Ctx) error {
	filter := store.ProductFilter{
		Category:     c.Query("category"),
		Search:       c.Query("search"),
		DiscountOnly: c.QueryBool("discount_only"),
	}

	records, err := p.Repo.Products().List(c.Context(), filter)
	if err != nil {
		return err
	}

	if records == nil {
		records = []*store.Product{}
	}

	return c.JSON(records)
}

func (p *ProductController) Get(c *fiber.Ctx) error {
	record, err := p.Repo.Products().GetByProductID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (p *ProductController) Create(c *fiber.Ctx) error {
	payload := new(ProductRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := p.Repo.Products().Save(c.Context(), payload.toModel())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (p *ProductController) Update(c *fiber.Ctx) error {
	payload := new(ProductRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := p.Repo.Products().Replace(c.Context(), c.Params("id"), payload.toModel())
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (p *ProductController) Delete(c *fiber.Ctx) error {
	if err := p.Repo.Products().Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (p *ProductController) Categories(c *fiber.Ctx) error {
	categories, err := p.Repo.Products().DistinctCategories(c.Context())
	if err != nil {
		return err
	}

	if categories == nil {
		categories = []string{}
	}

	return c.JSON(categories)
}
