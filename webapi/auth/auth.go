package auth

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/domain/user"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(r fiber.Router, authSvc *authsvc.Service) {
	r.Post("/sessions", Login(authSvc))
}

// Login handles user authentication and returns a JWT token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Email, input.Password)
		if errors.Is(err, user.ErrUserUnauthorized) {
			return common.ProblemDetailsJSON(c, "Incorrect email or password", nil, fiber.StatusUnauthorized)
		}
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		token, err := authSvc.GenerateToken(c.UserContext(), u)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", Session{User: u, Token: token})
	}
}
