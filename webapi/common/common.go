// Package common holds the response envelopes, error mapping and request
// binding shared by the HTTP handlers.
package common

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/lock"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

const problemContentType = "application/problem+json"

var validate = validator.New()

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem. The optional args are a
// string detail and/or an int status; without a status one is derived
// from err with ErrorToStatusCode.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   fiber.StatusInternalServerError,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Status = ErrorToStatusCode(err)
		pd.Detail = err.Error()
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			pd.Status = v
		case string:
			pd.Detail = v
		case validator.ValidationErrors:
			pd.Errors = fieldErrors(v)
		}
	}
	if pd.Status >= fiber.StatusInternalServerError {
		slog.Error("Request failed", "path", c.Path(), "error", err)
		pd.Detail = ""
	}
	return c.Status(pd.Status).JSON(pd, problemContentType)
}

// ErrorTitle returns the problem title for a known domain error.
func ErrorTitle(err error) string {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, statement.ErrRecipientUserNotFound):
		return "Recipient User not found"
	case errors.Is(err, statement.ErrStatementNotFound):
		return "Statement not found"
	case errors.Is(err, statement.ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, statement.ErrBalanceOverflow):
		return "Balance limit exceeded"
	case errors.Is(err, user.ErrUserAlreadyExists):
		return "User already exists"
	case errors.Is(err, user.ErrUserUnauthorized):
		return "Incorrect email or password"
	case errors.Is(err, lock.ErrLockTimeout):
		return "Service busy"
	case ErrorToStatusCode(err) == fiber.StatusBadRequest:
		return "Invalid request"
	default:
		return "Internal Server Error"
	}
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, statement.ErrRecipientUserNotFound),
		errors.Is(err, statement.ErrStatementNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, statement.ErrInsufficientFunds),
		errors.Is(err, statement.ErrBalanceOverflow),
		errors.Is(err, statement.ErrSelfTransfer),
		errors.Is(err, statement.ErrAmountMustBePositive),
		errors.Is(err, statement.ErrInvalidOperationType),
		errors.Is(err, statement.ErrDescriptionRequired),
		errors.Is(err, user.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, lock.ErrLockTimeout):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorJSON writes err as a problem using its mapped title and status.
func ErrorJSON(c *fiber.Ctx, err error) error {
	return ProblemDetailsJSON(c, ErrorTitle(err), err)
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure the error response is already written and the returned error is
// the result of writing it.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, ProblemDetailsJSON(c, "Validation failed", nil, verrs, fiber.StatusBadRequest)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", nil, err.Error(), fiber.StatusBadRequest)
	}
	return &input, nil
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("failed on %s", fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[fe.Field()] = msg
	}
	return out
}

// CurrentUserID resolves the user carried by the JWT that JwtProtected
// stored on the request.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.GetCurrentUserId(token)
}
