package service

import (
	"testing"
	"time"

	"vetcare-be/internal/entity"
	"vetcare-be/internal/pkg/apperror"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_PersistsRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, entity.UserRoleClient, "user@test.local")

	created, err := env.notification.Notify(testContext(), user.Id, "Your appointment was approved.", map[string]interface{}{
		"appointment_request_id": uuid.New().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, user.Id, created.UserId)

	rows := env.notificationsFor(t, user.Id)
	require.Len(t, rows, 1)
	assert.Equal(t, "Your appointment was approved.", rows[0].Message)
	assert.False(t, rows[0].IsRead)
}

func TestNotify_UnknownRecipient(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.notification.Notify(testContext(), uuid.New(), "hello", nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDispatchAll_SkipsFailuresAndContinues(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, entity.UserRoleClient, "user@test.local")

	env.notification.DispatchAll(testContext(), []events.NotificationQueued{
		{UserId: uuid.New(), Message: "orphaned"},
		{UserId: user.Id, Message: "delivered"},
	})

	rows := env.notificationsFor(t, user.Id)
	require.Len(t, rows, 1)
	assert.Equal(t, "delivered", rows[0].Message)
}

func TestNotify_PublishesDeliveryMessage(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, entity.UserRoleClient, "user@test.local")

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewNotificationService(env.uowFactory, pubSub, events.DeliveryTopic, logger.NewNopLogger())

	messages, err := pubSub.Subscribe(testContext(), events.DeliveryTopic)
	require.NoError(t, err)

	_, err = svc.Notify(testContext(), user.Id, "ping", nil)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		assert.Contains(t, string(msg.Payload), "ping")
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("expected a delivery message on the bus")
	}
}

func TestMarkAsRead_ScopedToRecipient(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, entity.UserRoleClient, "owner@test.local")
	other := env.seedUser(t, entity.UserRoleClient, "other@test.local")

	created, err := env.notification.Notify(testContext(), owner.Id, "for the owner only", nil)
	require.NoError(t, err)

	err = env.notification.MarkAsRead(testContext(), other.Id, created.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	rows := env.notificationsFor(t, owner.Id)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsRead)

	require.NoError(t, env.notification.MarkAsRead(testContext(), owner.Id, created.Id))
}

func TestMarkAsRead_UnknownId(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, entity.UserRoleClient, "user@test.local")

	err := env.notification.MarkAsRead(testContext(), user.Id, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReadState(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, entity.UserRoleClient, "user@test.local")

	first, err := env.notification.Notify(testContext(), user.Id, "first", nil)
	require.NoError(t, err)
	_, err = env.notification.Notify(testContext(), user.Id, "second", nil)
	require.NoError(t, err)

	count, err := env.notification.GetUnreadCount(testContext(), user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, env.notification.MarkAsRead(testContext(), user.Id, first.Id))
	count, err = env.notification.GetUnreadCount(testContext(), user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, env.notification.MarkAllAsRead(testContext(), user.Id))
	count, err = env.notification.GetUnreadCount(testContext(), user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	list, total, err := env.notification.GetNotifications(testContext(), user.Id, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.True(t, n.IsRead)
		assert.NotNil(t, n.ReadAt)
	}
}
