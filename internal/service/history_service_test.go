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

func finalizePayload(requestId uuid.UUID) *dto.FinalizeHistoryRequest {
	return &dto.FinalizeHistoryRequest{
		AppointmentRequestId:    requestId,
		ProceduresPerformed:     "Dental cleaning",
		PetConditionAfter:       "Stable",
		RecommendationsForOwner: "Soft food for two days",
		VeterinariansNotes:      "No complications",
		PaymentDate:             time.Now().Format(time.RFC3339),
		PaymentMethod:           "Cash",
		Amount:                  1500,
	}
}

func TestFinalize_CreatesHistoryAndMarksSuccessful(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	res, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	assert.Equal(t, request.Id, res.AppointmentRequestId)
	assert.Equal(t, 1500.0, res.Amount)
	assert.Equal(t, entity.RequestStatusSuccessful, env.requestStatus(t, request.Id))
}

func TestFinalize_DuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	_, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	_, err = env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	var count int64
	require.NoError(t, env.db.Model(&model.History{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFinalize_StorageFailureIsNotConflict(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	// Simulate the database failing mid-insert with no duplicate row
	// present. Only a duplicate key may be reported as a conflict.
	require.NoError(t, env.db.Exec(`CREATE TRIGGER histories_unavailable
		BEFORE INSERT ON histories
		BEGIN SELECT RAISE(ABORT, 'disk I/O error'); END`).Error)

	_, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.Error(t, err)
	assert.False(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, entity.RequestStatusApproved, env.requestStatus(t, request.Id))
}

func TestFinalize_UnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")

	_, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(uuid.New()))
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFinalize_BadPaymentDate(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	payload := finalizePayload(request.Id)
	payload.PaymentDate = "whenever"
	_, err := env.histories.Finalize(testContext(), asCaller(staff), payload)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Failed finalization must not move the status.
	assert.Equal(t, entity.RequestStatusApproved, env.requestStatus(t, request.Id))
}

func TestGetPostAppointments_JoinsOwnerPetAndVet(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	vet := env.seedUser(t, entity.UserRoleStaff, "vet@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)
	require.NoError(t, env.db.Model(&model.AppointmentRequest{}).
		Where("id = ?", request.Id).
		Update("assigned_vet_id", vet.Id).Error)

	_, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	summaries, err := env.histories.GetPostAppointments(testContext())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, request.Id, summary.Id)
	require.NotNil(t, summary.Owner)
	assert.Equal(t, client.Id, summary.Owner.Id)
	require.NotNil(t, summary.Pet)
	assert.Equal(t, "Biscuit", summary.Pet.Name)
	require.NotNil(t, summary.AssignedVet)
	assert.Equal(t, vet.Id, summary.AssignedVet.Id)
}

func TestEditClinicalAndPayment(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	created, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	clinical, err := env.histories.EditClinical(testContext(), &dto.EditHistoryRequest{
		Id:                  created.Id,
		ProceduresPerformed: "Dental cleaning and extraction",
		PetConditionAfter:   "Recovering",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dental cleaning and extraction", clinical.ProceduresPerformed)

	payment, err := env.histories.EditPayment(testContext(), &dto.EditPaymentHistoryRequest{
		Id:            created.Id,
		PaymentDate:   time.Now().Format(time.RFC3339),
		PaymentMethod: "Card",
		Amount:        1800,
	})
	require.NoError(t, err)
	assert.Equal(t, "Card", payment.PaymentMethod)
	assert.Equal(t, 1800.0, payment.Amount)
}

func TestGetPaymentHistory_ListsFinalizedPayments(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	created, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	items, err := env.histories.GetPaymentHistory(testContext())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.Id, items[0].Id)
	assert.Equal(t, client.Id, items[0].OwnerId)

	detail, err := env.histories.GetPaymentHistoryById(testContext(), created.Id)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, client.Id, detail.Owner.Id)
}

func TestGetStaffRemarks_ByRequestId(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	vet := env.seedUser(t, entity.UserRoleStaff, "vet@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)
	require.NoError(t, env.db.Model(&model.AppointmentRequest{}).
		Where("id = ?", request.Id).
		Update("assigned_vet_id", vet.Id).Error)

	_, err := env.histories.GetStaffRemarks(testContext(), request.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	remarks, err := env.histories.GetStaffRemarks(testContext(), request.Id)
	require.NoError(t, err)
	assert.Equal(t, "Dental cleaning", remarks.ProceduresPerformed)
	assert.Equal(t, vet.FullName(), remarks.AssignedVet)
}

func TestDeleteHistory(t *testing.T) {
	env := newTestEnv(t)
	client := env.seedUser(t, entity.UserRoleClient, "client@test.local")
	staff := env.seedUser(t, entity.UserRoleStaff, "staff@test.local")
	request := env.seedRequest(t, client, entity.RequestStatusApproved)

	created, err := env.histories.Finalize(testContext(), asCaller(staff), finalizePayload(request.Id))
	require.NoError(t, err)

	require.NoError(t, env.histories.DeleteHistory(testContext(), created.Id))

	err = env.histories.DeleteHistory(testContext(), created.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
