package service

import (
	"context"
	"testing"
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/repository/memory"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Minimal sqlite-friendly schema mirroring the GORM models; the postgres
// defaults (gen_random_uuid) are left out because services always set ids.
var testSchema = []string{
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

type testEnv struct {
	db           *gorm.DB
	uowFactory   unitofwork.RepositoryFactory
	cache        *memory.AvailabilityCache
	notification INotificationService
	availability IAvailabilityService
	appointments IAppointmentService
	histories    IHistoryService
	users        IUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	cache := memory.NewAvailabilityCache()

	notification := NewNotificationService(uowFactory, nil, events.DeliveryTopic, log)
	availability := NewAvailabilityService(uowFactory, cache)

	return &testEnv{
		db:           db,
		uowFactory:   uowFactory,
		cache:        cache,
		notification: notification,
		availability: availability,
		appointments: NewAppointmentService(uowFactory, notification, availability, log),
		histories:    NewHistoryService(uowFactory, log),
		users:        NewUserService(uowFactory, log),
	}
}

func (e *testEnv) seedUser(t *testing.T, role entity.UserRole, email string) *entity.User {
	t.Helper()
	user := &model.User{
		Id:        uuid.New(),
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Role:      string(role),
		IsActive:  true,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &entity.User{
		Id:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      role,
		IsActive:  true,
	}
}

func (e *testEnv) seedRequest(t *testing.T, owner *entity.User, status entity.RequestStatus) *entity.AppointmentRequest {
	t.Helper()
	pet := &model.Pet{
		Id:      uuid.New(),
		Name:    "Biscuit",
		Type:    "Dog",
		Breed:   "Corgi",
		Age:     3,
		Weight:  11.5,
		OwnerId: owner.Id,
	}
	if err := e.db.Create(pet).Error; err != nil {
		t.Fatalf("seed pet: %v", err)
	}

	request := &model.AppointmentRequest{
		Id:              uuid.New(),
		AppointmentDate: time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second),
		AppointmentType: "Checkup",
		Status:          string(status),
		Reason:          "Annual visit",
		PetId:           pet.Id,
		OwnerId:         owner.Id,
	}
	if err := e.db.Create(request).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}

	return &entity.AppointmentRequest{
		Id:              request.Id,
		AppointmentDate: request.AppointmentDate,
		AppointmentType: request.AppointmentType,
		Status:          status,
		Reason:          request.Reason,
		PetId:           pet.Id,
		OwnerId:         owner.Id,
	}
}

func (e *testEnv) requestStatus(t *testing.T, id uuid.UUID) entity.RequestStatus {
	t.Helper()
	var m model.AppointmentRequest
	if err := e.db.First(&m, "id = ?", id).Error; err != nil {
		t.Fatalf("load request: %v", err)
	}
	return entity.RequestStatus(m.Status)
}

func (e *testEnv) notificationsFor(t *testing.T, userId uuid.UUID) []model.Notification {
	t.Helper()
	var rows []model.Notification
	if err := e.db.Where("user_id = ?", userId).Find(&rows).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return rows
}

func asCaller(user *entity.User) Caller {
	return Caller{Id: user.Id, Role: user.Role, Name: user.FullName()}
}

func testContext() context.Context {
	return context.Background()
}
