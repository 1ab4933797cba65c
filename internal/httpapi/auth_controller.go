package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	errors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// defaultPhoneRegion resolves national numbers without a country prefix.
const defaultPhoneRegion = "BG"

// AuthController handles registration, login and the identity endpoint.
type AuthController struct {
	Auther     *auth.Auther
	ContextKey string
	Logger     auth.Logger
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
			validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Phone, validation.By(validatePhone)),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		)
	}, "Invalid registration payload")
}

// validatePhone accepts an empty value, otherwise the number must parse
// as a valid phone number.
func validatePhone(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return err
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number", errors.CategoryValidation)
	}

	return nil
}

// normalizePhone renders a parseable number in E.164, leaving anything
// else untouched. Validation has already rejected invalid input.
func normalizePhone(raw string) string {
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// TokenResponse is the body returned on register and login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        IdentityBody `json:"user"`
}

// IdentityBody is the public view of an identity.
type IdentityBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func identityBody(identity auth.Identity) IdentityBody {
	return IdentityBody{
		ID:    identity.ID(),
		Email: identity.Email(),
		Name:  identity.Name(),
		Role:  identity.Role(),
	}
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	identity, token, err := a.Auther.Register(c.Context(), auth.Registration{
		Email:    payload.Email,
		Name:     payload.Name,
		Phone:    normalizePhone(payload.Phone),
		Address:  payload.Address,
		Password: payload.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        identityBody(identity),
	})
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	identity, token, err := a.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        identityBody(identity),
	})
}

// Me returns the identity behind the presented token, read back from the
// store so stale tokens for deleted accounts fail.
func (a *AuthController) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c, a.ContextKey)
	if !ok {
		return auth.ErrUnauthenticated
	}

	identity, err := a.Auther.CurrentIdentity(c.Context(), claims)
	if err != nil {
		return err
	}

	return c.JSON(identityBody(identity))
}
