package controller

import (
	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/serverutils"
	"vetcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	ToggleStatus(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	GetVets(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(s service.IUserService) IUserController {
	return &userController{service: s}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/accounts")
	h.Use(serverutils.RequireIdentity)

	admin := serverutils.RequireRoles(entity.UserRoleAdmin)
	h.Post("", admin, c.Create)
	h.Get("", admin, c.GetAll)
	h.Get("/vets", c.GetVets)
	h.Get("/:id", c.GetById)
	h.Put("/:id/status", admin, c.ToggleStatus)
	h.Put("/:id/password", c.ChangePassword)
	h.Put("/:id", c.Update)
}

func (c *userController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateAccount(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Account created", res))
}

func (c *userController) Update(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateAccount(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Account updated", res))
}

func (c *userController) ToggleStatus(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.ToggleAccountStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.ToggleStatus(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Account status updated", res))
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), callerFrom(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Password updated", fiber.Map{}))
}

func (c *userController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), callerFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get accounts", res))
}

func (c *userController) GetById(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get account", res))
}

func (c *userController) GetVets(ctx *fiber.Ctx) error {
	res, err := c.service.GetVets(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get vets", res))
}
