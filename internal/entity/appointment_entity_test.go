package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequestStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Approved", "Declined", "Successful"} {
		status, err := ParseRequestStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, RequestStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "Cancelled", "Unknown"} {
		_, err := ParseRequestStatus(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}

func TestStatusTransitionsAllowed(t *testing.T) {
	assert.True(t, RequestStatusPending.Editable())
	assert.True(t, RequestStatusDeclined.Editable())
	assert.False(t, RequestStatusApproved.Editable())
	assert.False(t, RequestStatusSuccessful.Editable())

	assert.True(t, RequestStatusPending.Declinable())
	assert.True(t, RequestStatusApproved.Declinable())
	assert.False(t, RequestStatusDeclined.Declinable())
	assert.False(t, RequestStatusSuccessful.Declinable())
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("Staff")
	assert.NoError(t, err)
	assert.Equal(t, UserRoleStaff, role)

	_, err = ParseUserRole("staff")
	assert.Error(t, err)
}
