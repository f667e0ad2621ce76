package controller

import (
	"vetcare-be/internal/pkg/serverutils"
	"vetcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetUnreadCount(ctx *fiber.Ctx) error
	MarkAsRead(ctx *fiber.Ctx) error
	MarkAllAsRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	service service.INotificationService
}

func NewNotificationController(s service.INotificationService) INotificationController {
	return &notificationController{service: s}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notifications")
	h.Use(serverutils.RequireIdentity)
	h.Get("", c.GetAll)
	h.Get("/unread-count", c.GetUnreadCount)
	h.Patch("/read-all", c.MarkAllAsRead)
	h.Patch("/:id/read", c.MarkAsRead)
}

func (c *notificationController) GetAll(ctx *fiber.Ctx) error {
	caller := callerFrom(ctx)
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	notifications, total, err := c.service.GetNotifications(ctx.Context(), caller.Id, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notifications", fiber.Map{
		"notifications": notifications,
		"total":         total,
	}))
}

func (c *notificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	caller := callerFrom(ctx)
	count, err := c.service.GetUnreadCount(ctx.Context(), caller.Id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unread count", fiber.Map{"count": count}))
}

func (c *notificationController) MarkAsRead(ctx *fiber.Ctx) error {
	caller := callerFrom(ctx)
	id, err := pathId(ctx)
	if err != nil {
		return err
	}
	if err := c.service.MarkAsRead(ctx.Context(), caller.Id, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification marked as read", fiber.Map{}))
}

func (c *notificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	caller := callerFrom(ctx)
	if err := c.service.MarkAllAsRead(ctx.Context(), caller.Id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("All notifications marked as read", fiber.Map{}))
}
