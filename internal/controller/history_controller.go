package controller

import (
	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/serverutils"
	"vetcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Finalize(ctx *fiber.Ctx) error
	GetPostAppointments(ctx *fiber.Ctx) error
	GetPostAppointmentById(ctx *fiber.Ctx) error
	EditClinical(ctx *fiber.Ctx) error
	DeleteHistory(ctx *fiber.Ctx) error
	GetPaymentHistory(ctx *fiber.Ctx) error
	GetPaymentHistoryById(ctx *fiber.Ctx) error
	EditPayment(ctx *fiber.Ctx) error
	GetStaffRemarks(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
}

func NewHistoryController(s service.IHistoryService) IHistoryController {
	return &historyController{service: s}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history")
	h.Use(serverutils.RequireIdentity)

	staff := serverutils.RequireRoles(entity.UserRoleAdmin, entity.UserRoleStaff)
	h.Post("", staff, c.Finalize)
	h.Get("", staff, c.GetPostAppointments)
	h.Get("/payments", staff, c.GetPaymentHistory)
	h.Get("/payments/:id", staff, c.GetPaymentHistoryById)
	h.Put("/payments/:id", staff, c.EditPayment)
	// Staff remarks are keyed by the appointment request, readable by its owner.
	h.Get("/remarks/:id", c.GetStaffRemarks)
	h.Get("/:id", staff, c.GetPostAppointmentById)
	h.Put("/:id", staff, c.EditClinical)
	h.Delete("/:id", serverutils.RequireRoles(entity.UserRoleAdmin), c.DeleteHistory)
}

func (c *historyController) Finalize(ctx *fiber.Ctx) error {
	var req dto.FinalizeHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Finalize(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Appointment finalized", res))
}

func (c *historyController) GetPostAppointments(ctx *fiber.Ctx) error {
	res, err := c.service.GetPostAppointments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get post appointments", res))
}

func (c *historyController) GetPostAppointmentById(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetPostAppointmentById(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get post appointment", res))
}

func (c *historyController) EditClinical(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.EditHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id

	res, err := c.service.EditClinical(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("History updated", res))
}

func (c *historyController) DeleteHistory(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteHistory(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("History deleted", fiber.Map{}))
}

func (c *historyController) GetPaymentHistory(ctx *fiber.Ctx) error {
	res, err := c.service.GetPaymentHistory(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get payment history", res))
}

func (c *historyController) GetPaymentHistoryById(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetPaymentHistoryById(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get payment record", res))
}

func (c *historyController) EditPayment(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.EditPaymentHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.EditPayment(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment record updated", res))
}

func (c *historyController) GetStaffRemarks(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetStaffRemarks(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get staff remarks", res))
}
