package service

import (
	"testing"
	"time"

	"vetcare-be/internal/dto"
	"vetcare-be/internal/entity"
	"vetcare-be/internal/model"
	"vetcare-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedApprovedFor(t *testing.T, owner *entity.User, vetId uuid.UUID, at time.Time) {
	t.Helper()
	request := e.seedRequest(t, owner, entity.RequestStatusApproved)
	require.NoError(t, e.db.Model(&model.AppointmentRequest{}).
		Where("id = ?", request.Id).
		Updates(map[string]interface{}{
			"assigned_vet_id":  vetId,
			"appointment_date": at,
		}).Error)
}

func TestCheckAvailability_DetectsConflictsInWindow(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	vet := env.seedUser(t, entity.UserRoleStaff, "vet@test.local")

	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
	env.seedApprovedFor(t, client, vet.Id, base.Add(30*time.Minute))

	res, err := env.availability.CheckAvailability(testContext(), vet.Id, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, 1, res.Conflicts)

	// Window end is exclusive.
	res, err = env.availability.CheckAvailability(testContext(), vet.Id, base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckAvailability_IgnoresOtherVetsAndPending(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	vet := env.seedUser(t, entity.UserRoleStaff, "vet@test.local")
	other := env.seedUser(t, entity.UserRoleStaff, "other@test.local")

	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
	env.seedApprovedFor(t, client, other.Id, base.Add(15*time.Minute))
	env.seedRequest(t, client, entity.RequestStatusPending)

	res, err := env.availability.CheckAvailability(testContext(), vet.Id, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 0, res.Conflicts)
}

func TestCheckAvailability_InvalidWindow(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	_, err := env.availability.CheckAvailability(testContext(), uuid.New(), now, now)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCheckAvailability_CacheInvalidatedByAccept(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	admin := env.seedUser(t, entity.UserRoleAdmin, "admin@test.local")
	vet := env.seedUser(t, entity.UserRoleStaff, "vet@test.local")

	request := env.seedRequest(t, client, entity.RequestStatusPending)
	window := request.AppointmentDate.Add(-time.Hour)

	// Warm the cache while the vet's book is empty.
	res, err := env.availability.CheckAvailability(testContext(), vet.Id, window, window.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, res.Available)

	_, err = env.appointments.Accept(testContext(), asCaller(admin), &dto.AcceptRequestRequest{
		Id:            request.Id,
		AssignedVetId: &vet.Id,
	})
	require.NoError(t, err)

	// Accept invalidated the snapshot, so the conflict shows immediately.
	res, err = env.availability.CheckAvailability(testContext(), vet.Id, window, window.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, res.Available)
}
