package controller

import (
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/serverutils"
	"vetcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	ListPending(ctx *fiber.Ctx) error
	GetDetails(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Decline(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reschedule(ctx *fiber.Ctx) error
	CheckAvailability(ctx *fiber.Ctx) error
}

type appointmentController struct {
	service      service.IAppointmentService
	availability service.IAvailabilityService
}

func NewAppointmentController(s service.IAppointmentService, availability service.IAvailabilityService) IAppointmentController {
	return &appointmentController{service: s, availability: availability}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/requests")
	h.Use(serverutils.RequireIdentity)
	h.Post("", serverutils.RequireRoles(entity.UserRoleClient), c.Submit)
	h.Get("", c.ListPending)
	h.Get("/staff-availability", c.CheckAvailability)
	h.Get("/:id", c.GetDetails)
	h.Put("/:id/accept", serverutils.RequireRoles(entity.UserRoleAdmin), c.Accept)
	h.Put("/:id/decline", serverutils.RequireRoles(entity.UserRoleAdmin), c.Decline)
	h.Put("/:id/reschedule", c.Reschedule)
	h.Put("/:id", c.Edit)
	h.Delete("/:id", serverutils.RequireRoles(entity.UserRoleAdmin), c.Delete)
}

// callerFrom narrows the gateway identity to the service-level caller value.
func callerFrom(ctx *fiber.Ctx) service.Caller {
	identity := serverutils.CallerIdentity(ctx)
	if identity == nil {
		return service.Caller{}
	}
	return service.Caller{
		Id:   identity.Id,
		Role: identity.Role,
		Name: identity.Name,
	}
}

func pathId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NewValidation("id must be a valid UUID")
	}
	return id, nil
}

func (c *appointmentController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Appointment request submitted", res))
}

func (c *appointmentController) ListPending(ctx *fiber.Ctx) error {
	res, err := c.service.ListPending(ctx.Context(), callerFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get pending requests", res))
}

func (c *appointmentController) GetDetails(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetDetails(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get request details", res))
}

func (c *appointmentController) Accept(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.AcceptRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id

	res, err := c.service.Accept(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment request accepted", res))
}

func (c *appointmentController) Decline(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.DeclineRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id

	res, err := c.service.Decline(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment request declined", res))
}

func (c *appointmentController) Edit(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.EditRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Edit(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment request updated", res))
}

func (c *appointmentController) Delete(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Delete(ctx.Context(), callerFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment request deleted", res))
}

func (c *appointmentController) Reschedule(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	var req dto.RescheduleRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("malformed request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Reschedule(ctx.Context(), callerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment request rescheduled", res))
}

// CheckAvailability answers whether a vet already has approved appointments
// inside the requested window. Query params: vet_id, from, to (RFC3339).
func (c *appointmentController) CheckAvailability(ctx *fiber.Ctx) error {
	vetId, err := uuid.Parse(ctx.Query("vet_id"))
	if err != nil {
		return apperror.NewValidation("vet_id must be a valid UUID")
	}
	from, err := time.Parse(time.RFC3339, ctx.Query("from"))
	if err != nil {
		return apperror.NewValidation("from must be an RFC3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, ctx.Query("to"))
	if err != nil {
		return apperror.NewValidation("to must be an RFC3339 timestamp")
	}

	res, err := c.availability.CheckAvailability(ctx.Context(), vetId, from, to)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success check availability", res))
}
