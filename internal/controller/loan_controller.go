package controller

import (
	"lendhub-be/internal/dto"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/pkg/serverutils"
	"lendhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILoanController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	GetMyLoans(ctx *fiber.Ctx) error
	GetLoan(ctx *fiber.Ctx) error
	CreateWithdrawal(ctx *fiber.Ctx) error
	GetMyWithdrawals(ctx *fiber.Ctx) error
	GetMyProfile(ctx *fiber.Ctx) error
}

type loanController struct {
	service service.ILoanService
}

func NewLoanController(service service.ILoanService) ILoanController {
	return &loanController{service: service}
}

func (c *loanController) RegisterRoutes(r fiber.Router) {
	loans := r.Group("/loans", serverutils.JwtMiddleware)
	loans.Post("/", c.Apply)
	loans.Get("/", c.GetMyLoans)
	loans.Get("/:id", c.GetLoan)

	withdrawals := r.Group("/withdrawals", serverutils.JwtMiddleware)
	withdrawals.Post("/", c.CreateWithdrawal)
	withdrawals.Get("/", c.GetMyWithdrawals)

	r.Get("/profile", serverutils.JwtMiddleware, c.GetMyProfile)
}

func (c *loanController) Apply(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.LoanApplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Apply(ctx.UserContext(), userID, &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Loan application submitted", res))
}

func (c *loanController) GetMyLoans(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.GetMyLoans(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Loans retrieved", res))
}

func (c *loanController) GetLoan(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	loanID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid loan id"))
	}

	res, err := c.service.GetLoan(ctx.UserContext(), userID, loanID)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Loan retrieved", res))
}

func (c *loanController) CreateWithdrawal(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.WithdrawalCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.CreateWithdrawal(ctx.UserContext(), userID, &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Withdrawal request submitted", res))
}

func (c *loanController) GetMyWithdrawals(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.GetMyWithdrawals(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawals retrieved", res))
}

func (c *loanController) GetMyProfile(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.GetMyProfile(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile retrieved", res))
}

// currentUserID reads the id JwtMiddleware placed into locals.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIDStr)
}
