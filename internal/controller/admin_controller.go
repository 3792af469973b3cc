package controller

import (
	"lendhub-be/internal/dto"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/pkg/serverutils"
	"lendhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error

	GetLoans(ctx *fiber.Ctx) error
	UpdateLoan(ctx *fiber.Ctx) error

	GetWithdrawals(ctx *fiber.Ctx) error
	UpdateWithdrawal(ctx *fiber.Ctx) error

	GetUsers(ctx *fiber.Ctx) error

	UpdateProfile(ctx *fiber.Ctx) error

	GetAuditLog(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service     service.IAdminService
	authService service.IAuthService
}

func NewAdminController(service service.IAdminService, authService service.IAuthService) IAdminController {
	return &adminController{
		service:     service,
		authService: authService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	admin := r.Group("/admin")
	admin.Post("/login", c.Login)

	admin.Get("/loans", c.GetLoans)
	admin.Patch("/loans/:id", c.UpdateLoan)

	admin.Get("/withdrawals", c.GetWithdrawals)
	admin.Patch("/withdrawals/:id", c.UpdateWithdrawal)

	admin.Get("/users", c.GetUsers)
	admin.Patch("/users/:userId/profile", c.UpdateProfile)

	admin.Get("/audit-log", c.GetAuditLog)
	admin.Get("/logs", c.GetLogs)
	admin.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.authService.LoginAdmin(ctx.UserContext(), &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) GetLoans(ctx *fiber.Ctx) error {
	loans, total, err := c.service.GetLoans(
		ctx.UserContext(),
		bearerToken(ctx),
		ctx.QueryInt("page", 1),
		ctx.QueryInt("limit", 10),
		ctx.Query("status"),
	)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Loans retrieved", fiber.Map{
		"items": loans,
		"total": total,
	}))
}

// UpdateLoan is the console's loan mutation endpoint. The body is parsed
// strictly: fields outside the allow-list reject the request.
func (c *adminController) UpdateLoan(ctx *fiber.Ctx) error {
	loanID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid loan id"))
	}

	var req dto.AdminLoanUpdateRequest
	if err := serverutils.StrictBodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			serverutils.ValidationErrorResponse("Validation failed", []string{"request body contains unknown or malformed fields"}))
	}

	res, err := c.service.UpdateLoan(ctx.UserContext(), bearerToken(ctx), loanID, &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Loan updated", res))
}

func (c *adminController) GetWithdrawals(ctx *fiber.Ctx) error {
	withdrawals, total, err := c.service.GetWithdrawals(
		ctx.UserContext(),
		bearerToken(ctx),
		ctx.QueryInt("page", 1),
		ctx.QueryInt("limit", 10),
		ctx.Query("status"),
	)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawals retrieved", fiber.Map{
		"items": withdrawals,
		"total": total,
	}))
}

func (c *adminController) UpdateWithdrawal(ctx *fiber.Ctx) error {
	withdrawalID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid withdrawal id"))
	}

	var req dto.AdminWithdrawalUpdateRequest
	if err := serverutils.StrictBodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			serverutils.ValidationErrorResponse("Validation failed", []string{"request body contains unknown or malformed fields"}))
	}

	res, err := c.service.UpdateWithdrawal(ctx.UserContext(), bearerToken(ctx), withdrawalID, &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal updated", res))
}

func (c *adminController) GetUsers(ctx *fiber.Ctx) error {
	users, total, err := c.service.GetUsers(
		ctx.UserContext(),
		bearerToken(ctx),
		ctx.QueryInt("page", 1),
		ctx.QueryInt("limit", 10),
		ctx.Query("role"),
	)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Users retrieved", fiber.Map{
		"items": users,
		"total": total,
	}))
}

func (c *adminController) UpdateProfile(ctx *fiber.Ctx) error {
	userID, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user id"))
	}

	var req dto.AdminProfileUpdateRequest
	if err := serverutils.StrictBodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			serverutils.ValidationErrorResponse("Validation failed", []string{"request body contains unknown or malformed fields"}))
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), bearerToken(ctx), userID, &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *adminController) GetAuditLog(ctx *fiber.Ctx) error {
	var targetId *uuid.UUID
	if raw := ctx.Query("targetId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid targetId"))
		}
		targetId = &parsed
	}

	entries, err := c.service.GetAuditLog(
		ctx.UserContext(),
		bearerToken(ctx),
		ctx.Query("targetType"),
		targetId,
		ctx.QueryInt("page", 1),
		ctx.QueryInt("limit", 20),
	)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit log retrieved", entries))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	logs, err := c.service.GetSystemLogs(
		ctx.UserContext(),
		bearerToken(ctx),
		ctx.Query("level"),
		ctx.QueryInt("limit", 50),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs retrieved", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	entry, err := c.service.GetSystemLogById(ctx.UserContext(), bearerToken(ctx), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log retrieved", entry))
}

// bearerToken strips the Bearer prefix; the Authorization Guard does the
// actual validation.
func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
