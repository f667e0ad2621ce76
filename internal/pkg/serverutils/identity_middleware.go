package serverutils

import (
	"vetcare-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Identity is the caller identity supplied by the upstream auth gateway.
// It is trusted as given; token mechanics live outside this service.
type Identity struct {
	Id   uuid.UUID
	Role entity.UserRole
	Name string
}

const identityLocalKey = "caller_identity"

// IdentityMiddleware reads the gateway-injected identity headers and stores
// the parsed identity in locals. Routes that require a caller reject later
// via RequireIdentity / RequireRoles.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	idHeader := ctx.Get("X-User-Id")
	roleHeader := ctx.Get("X-User-Role")

	if idHeader == "" || roleHeader == "" {
		return ctx.Next()
	}

	id, err := uuid.Parse(idHeader)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid caller identity"})
	}

	role, err := entity.ParseUserRole(roleHeader)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid caller role"})
	}

	ctx.Locals(identityLocalKey, &Identity{
		Id:   id,
		Role: role,
		Name: ctx.Get("X-User-Name"),
	})
	return ctx.Next()
}

// CallerIdentity returns the identity set by IdentityMiddleware, or nil.
func CallerIdentity(ctx *fiber.Ctx) *Identity {
	identity, ok := ctx.Locals(identityLocalKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireIdentity rejects unauthenticated calls.
func RequireIdentity(ctx *fiber.Ctx) error {
	if CallerIdentity(ctx) == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing caller identity"})
	}
	return ctx.Next()
}

// RequireRoles guards a route group to the given roles.
func RequireRoles(roles ...entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := CallerIdentity(ctx)
		if identity == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing caller identity"})
		}
		for _, role := range roles {
			if identity.Role == role {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
	}
}
