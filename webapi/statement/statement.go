package statement

import (
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/middleware"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	stmtsvc "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(
	r fiber.Router,
	stmtSvc *stmtsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	g := r.Group("/statements", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/balance", GetBalance(stmtSvc, authSvc))
	g.Post("/deposit", CreateStatement(stmtSvc, authSvc, statement.Deposit))
	g.Post("/withdraw", CreateStatement(stmtSvc, authSvc, statement.Withdraw))
	g.Post("/transfers/:receiverId", Transfer(stmtSvc, authSvc))
	g.Get("/:statementId", GetStatement(stmtSvc, authSvc))
}

// GetBalance returns the caller's balance and statement history.
func GetBalance(stmtSvc *stmtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		b, err := stmtSvc.GetBalance(c.UserContext(), userID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched", b)
	}
}

// CreateStatement records a deposit or withdrawal for the caller.
func CreateStatement(
	stmtSvc *stmtsvc.Service,
	authSvc *authsvc.Service,
	opType statement.OperationType,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[OperationInput](c)
		if input == nil {
			return err
		}
		amount, err := utils.MinorUnits(input.Amount)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		st, err := stmtSvc.CreateStatement(c.UserContext(), stmtsvc.CreateStatementInput{
			UserID:      userID,
			Amount:      amount,
			Description: input.Description,
			Type:        opType,
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Statement created", st)
	}
}

// Transfer sends funds from the caller to receiverId.
func Transfer(stmtSvc *stmtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		senderID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		receiverID, err := uuid.Parse(c.Params("receiverId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid receiver ID", nil, "receiverId must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[OperationInput](c)
		if input == nil {
			return err
		}
		amount, err := utils.MinorUnits(input.Amount)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		st, err := stmtSvc.Transfer(c.UserContext(), stmtsvc.TransferInput{
			SenderID:    senderID,
			ReceiverID:  receiverID,
			Amount:      amount,
			Description: input.Description,
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", st)
	}
}

// GetStatement returns one statement the caller owns or sent.
func GetStatement(stmtSvc *stmtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		statementID, err := uuid.Parse(c.Params("statementId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid statement ID", nil, "statementId must be a valid UUID", fiber.StatusBadRequest)
		}
		st, err := stmtSvc.GetStatement(c.UserContext(), userID, statementID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement fetched", st)
	}
}
