package controller

import (
	"lendhub-be/internal/dto"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/pkg/serverutils"
	"lendhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", serverutils.JwtMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("User registered successfully", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userIDStr, _ := ctx.Locals("user_id").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.GetProfile(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(apperror.StatusCode(err)).JSON(serverutils.FromAppError(err))
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile retrieved", res))
}
