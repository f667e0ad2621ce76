package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/pkg/serverutils"
	"vetcare-be/internal/repository/memory"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/internal/service"
	"vetcare-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var controllerTestSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT,
		email TEXT NOT NULL UNIQUE,
		contact_no TEXT,
		role TEXT NOT NULL,
		password_hash TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE pets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		breed TEXT,
		age INTEGER NOT NULL,
		weight REAL NOT NULL,
		owner_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE appointment_requests (
		id TEXT PRIMARY KEY,
		appointment_date DATETIME NOT NULL,
		appointment_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		reason TEXT,
		additional_comments TEXT,
		remark TEXT,
		reschedule_date DATETIME,
		approved_at DATETIME,
		declined_at DATETIME,
		pet_id TEXT NOT NULL UNIQUE,
		owner_id TEXT NOT NULL,
		preferred_vet_id TEXT,
		assigned_vet_id TEXT,
		admin_id TEXT,
		approved_by TEXT,
		declined_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		message TEXT NOT NULL,
		metadata TEXT,
		is_read BOOLEAN NOT NULL DEFAULT 0,
		read_at DATETIME,
		created_at DATETIME
	);`,
	`CREATE TABLE histories (
		id TEXT PRIMARY KEY,
		appointment_request_id TEXT NOT NULL UNIQUE,
		owner_id TEXT NOT NULL,
		date_accomplished DATETIME,
		procedures_performed TEXT,
		pet_condition_after TEXT,
		recommendations_for_owner TEXT,
		veterinarians_notes TEXT,
		payment_date DATETIME NOT NULL,
		payment_method TEXT NOT NULL,
		amount REAL NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	for _, stmt := range controllerTestSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	cache := memory.NewAvailabilityCache()

	notification := service.NewNotificationService(uowFactory, nil, events.DeliveryTopic, log)
	availability := service.NewAvailabilityService(uowFactory, cache)
	appointments := service.NewAppointmentService(uowFactory, notification, availability, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	app.Use(serverutils.IdentityMiddleware)
	api := app.Group("/api")
	NewAppointmentController(appointments, availability).RegisterRoutes(api)

	return app, db
}

func seedAccount(t *testing.T, db *gorm.DB, role entity.UserRole, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.User{
		Id:        id,
		FirstName: "Test",
		Email:     email,
		Role:      string(role),
		IsActive:  true,
	}).Error)
	return id
}

func identified(req *http.Request, id uuid.UUID, role entity.UserRole) *http.Request {
	req.Header.Set("X-User-Id", id.String())
	req.Header.Set("X-User-Role", string(role))
	req.Header.Set("X-User-Name", "Test Caller")
	return req
}

func TestRoutes_RejectAnonymousCallers(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/requests", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_RoleGuards(t *testing.T) {
	app, db := newTestApp(t)
	clientId := seedAccount(t, db, entity.UserRoleClient, "client@test.local")

	// A client may not accept requests.
	req, _ := http.NewRequest(http.MethodPut, "/api/requests/"+uuid.NewString()+"/accept", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(identified(req, clientId, entity.UserRoleClient))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// An admin may not submit one.
	req, _ = http.NewRequest(http.MethodPost, "/api/requests", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(identified(req, clientId, entity.UserRoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitEndpoint_CreatesRequest(t *testing.T) {
	app, db := newTestApp(t)
	clientId := seedAccount(t, db, entity.UserRoleClient, "client@test.local")

	body, _ := json.Marshal(fiber.Map{
		"appointment_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"appointment_type": "Checkup",
		"reason":           "Annual visit",
		"pet_details": fiber.Map{
			"name":   "Milo",
			"type":   "Cat",
			"age":    "2",
			"weight": "4.2",
		},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/requests", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(identified(req, clientId, entity.UserRoleClient))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Table("appointment_requests").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitEndpoint_MissingFieldsIs400(t *testing.T) {
	app, db := newTestApp(t)
	clientId := seedAccount(t, db, entity.UserRoleClient, "client@test.local")

	req, _ := http.NewRequest(http.MethodPost, "/api/requests", bytes.NewBufferString(`{"appointment_type":"Checkup"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(identified(req, clientId, entity.UserRoleClient))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDetailsEndpoint_ErrorMapping(t *testing.T) {
	app, db := newTestApp(t)
	adminId := seedAccount(t, db, entity.UserRoleAdmin, "admin@test.local")

	// Malformed id -> 400.
	req, _ := http.NewRequest(http.MethodGet, "/api/requests/not-a-uuid", nil)
	resp, err := app.Test(identified(req, adminId, entity.UserRoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown id -> 404.
	req, _ = http.NewRequest(http.MethodGet, "/api/requests/"+uuid.NewString(), nil)
	resp, err = app.Test(identified(req, adminId, entity.UserRoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAcceptEndpoint_InvalidStateIs422(t *testing.T) {
	app, db := newTestApp(t)
	adminId := seedAccount(t, db, entity.UserRoleAdmin, "admin@test.local")
	clientId := seedAccount(t, db, entity.UserRoleClient, "client@test.local")

	petId := uuid.New()
	require.NoError(t, db.Create(&model.Pet{
		Id: petId, Name: "Milo", Type: "Cat", Age: 2, Weight: 4, OwnerId: clientId,
	}).Error)
	requestId := uuid.New()
	require.NoError(t, db.Create(&model.AppointmentRequest{
		Id:              requestId,
		AppointmentDate: time.Now().Add(24 * time.Hour),
		AppointmentType: "Checkup",
		Status:          string(entity.RequestStatusDeclined),
		PetId:           petId,
		OwnerId:         clientId,
	}).Error)

	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/requests/%s/accept", requestId), bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(identified(req, adminId, entity.UserRoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
