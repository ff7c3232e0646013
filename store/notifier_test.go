package store

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticked(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func TestLocalNotifierCoalescesTicks(t *testing.T) {
	n := NewLocalNotifier()
	ch, stop := n.Listen("tasks")
	defer stop()

	ctx := context.Background()
	require.NoError(t, n.Notify(ctx, "tasks"))
	require.NoError(t, n.Notify(ctx, "tasks"))
	require.NoError(t, n.Notify(ctx, "tasks"))

	assert.True(t, ticked(ch))
	assert.False(t, ticked(ch))
}

func TestLocalNotifierScopesByCollection(t *testing.T) {
	n := NewLocalNotifier()
	tasks, stopTasks := n.Listen("tasks")
	defer stopTasks()
	alerts, stopAlerts := n.Listen("alerts")
	defer stopAlerts()

	require.NoError(t, n.Notify(context.Background(), "alerts"))
	assert.False(t, ticked(tasks))
	assert.True(t, ticked(alerts))
}

func TestLocalNotifierStopListening(t *testing.T) {
	n := NewLocalNotifier()
	ch, stop := n.Listen("tasks")
	stop()
	stop()

	require.NoError(t, n.Notify(context.Background(), "tasks"))
	assert.False(t, ticked(ch))
}

func TestRedisNotifierPublishesAndNotifiesLocally(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	n := NewRedisNotifier(rdb)
	ch, stop := n.Listen("appointments")
	defer stop()

	mock.ExpectPublish(ChangeChannelPrefix+"appointments", n.Origin()).SetVal(1)

	require.NoError(t, n.Notify(context.Background(), "appointments"))
	assert.True(t, ticked(ch))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisNotifierPublishFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	n := NewRedisNotifier(rdb)
	ch, stop := n.Listen("appointments")
	defer stop()

	mock.ExpectPublish(ChangeChannelPrefix+"appointments", n.Origin()).SetErr(assert.AnError)

	err := n.Notify(context.Background(), "appointments")
	assert.ErrorIs(t, err, assert.AnError)
	// Local listeners are still told.
	assert.True(t, ticked(ch))
}

func TestRedisNotifierIgnoresOwnEcho(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	n := NewRedisNotifier(rdb)
	ch, stop := n.Listen("tasks")
	defer stop()

	n.handle(context.Background(), ChangeChannelPrefix+"tasks", n.Origin())
	assert.False(t, ticked(ch))

	n.handle(context.Background(), ChangeChannelPrefix+"tasks", "another-instance")
	assert.True(t, ticked(ch))
}

func TestKafkaNotifierHandle(t *testing.T) {
	n := &KafkaNotifier{local: NewLocalNotifier(), origin: "self"}
	ch, stop := n.Listen("patients")
	defer stop()

	n.handle(context.Background(), changeMessage("patients", "self"))
	assert.False(t, ticked(ch))

	n.handle(context.Background(), changeMessage("patients", "peer"))
	assert.True(t, ticked(ch))
}

func TestWriteErrorMessage(t *testing.T) {
	err := &WriteError{Op: "update", Collection: "tasks", ID: "t1", Err: ErrNotFound}
	assert.Equal(t, "update tasks/t1: record not found", err.Error())

	err = &WriteError{Op: "create", Collection: "tasks", Err: assert.AnError}
	assert.Contains(t, err.Error(), "create tasks: ")
}
