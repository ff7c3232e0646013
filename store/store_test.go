package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type appointments = Collection[model.Appointment, *model.Appointment]

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_store_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.Appointment{}, &model.Task{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return NewSQL(db, NewLocalNotifier())
}

func openAppointments(s *Store) *appointments {
	return Open[model.Appointment](s, "appointments")
}

func receive[T any](t *testing.T, sub *Subscription[T]) []T {
	t.Helper()
	select {
	case recs, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return recs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := setupTestStore(t)
	fixed := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	c := openAppointments(s)
	ctx := context.Background()

	rec := model.Appointment{PatientName: "Jane Doe", DoctorID: "doc-1", Status: model.StatusPending}
	id, err := c.Create(ctx, &rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.PatientName)
	assert.True(t, got.CreatedAt.Equal(fixed))
}

func TestGetAbsentReturnsNil(t *testing.T) {
	c := openAppointments(setupTestStore(t))

	got, err := c.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.Get(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesAndStamps(t *testing.T) {
	s := setupTestStore(t)
	c := openAppointments(s)
	ctx := context.Background()

	id, err := c.Create(ctx, &model.Appointment{PatientName: "Jane", DoctorID: "doc-1", Reason: "Check-up", Status: model.StatusPending})
	require.NoError(t, err)

	later := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return later })
	require.NoError(t, c.Update(ctx, id, Fields{"status": model.StatusCompleted}))

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, "Check-up", got.Reason)
	assert.True(t, got.UpdatedAt.Equal(later))
}

func TestUpdateAbsentIsWriteError(t *testing.T) {
	c := openAppointments(setupTestStore(t))

	err := c.Update(context.Background(), "nope", Fields{"status": model.StatusCompleted})
	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "update", werr.Op)
	assert.Equal(t, "appointments", werr.Collection)
	assert.Equal(t, "nope", werr.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	ctx := context.Background()

	id, err := c.Create(ctx, &model.Appointment{PatientName: "Jane", DoctorID: "doc-1"})
	require.NoError(t, err)

	require.NoError(t, c.Remove(ctx, id))
	require.NoError(t, c.Remove(ctx, id))

	got, err := c.Get(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindFiltersAndOrders(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	ctx := context.Background()

	seed := []model.Appointment{
		{PatientName: "A", DoctorID: "doc-1", Date: "2025-01-15", Time: "11:00", Status: model.StatusPending},
		{PatientName: "B", DoctorID: "doc-1", Date: "2025-01-15", Time: "09:00", Status: model.StatusNoShow},
		{PatientName: "C", DoctorID: "doc-2", Date: "2025-01-15", Time: "10:00", Status: model.StatusCancelled},
		{PatientName: "D", DoctorID: "doc-1", Date: "2025-01-16", Time: "08:00", Status: model.StatusInProgress},
	}
	for i := range seed {
		_, err := c.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	recs, err := c.Find(ctx, Where("doctor_id", "doc-1").Where("date", "2025-01-15").Order("time"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "B", recs[0].PatientName)
	assert.Equal(t, "A", recs[1].PatientName)

	recs, err = c.Find(ctx, Query{}.WhereIn("status", string(model.StatusNoShow), string(model.StatusInProgress)).OrderDesc("patient_name"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "D", recs[0].PatientName)
	assert.Equal(t, "B", recs[1].PatientName)

	recs, err = c.Find(ctx, Query{}.WhereIn("status"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestQueryBuildersDoNotAlias(t *testing.T) {
	base := Where("doctor_id", "doc-1")
	a := base.Where("date", "2025-01-15")
	b := base.Where("date", "2025-01-16")
	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "2025-01-15", a.Filters[1].Value)
	assert.Equal(t, "2025-01-16", b.Filters[1].Value)
}

func TestSubscribeDeliversInitialAndChanges(t *testing.T) {
	s := setupTestStore(t)
	c := openAppointments(s)
	ctx := context.Background()

	_, err := c.Create(ctx, &model.Appointment{PatientName: "Jane", DoctorID: "doc-1", Status: model.StatusPending})
	require.NoError(t, err)

	sub := c.Subscribe(ctx, Where("doctor_id", "doc-1"))
	defer sub.Cancel()

	first := receive(t, sub)
	require.Len(t, first, 1)

	// A second handle on the same store shares the change feed.
	other := openAppointments(s)
	_, err = other.Create(ctx, &model.Appointment{PatientName: "John", DoctorID: "doc-1", Status: model.StatusPending})
	require.NoError(t, err)

	second := receive(t, sub)
	assert.Len(t, second, 2)
}

func TestSubscribeEmptyResultIsNonNil(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	sub := c.Subscribe(context.Background(), Query{})
	defer sub.Cancel()

	recs := receive(t, sub)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestSubscriptionCancelClosesChannel(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	sub := c.Subscribe(context.Background(), Query{})
	receive(t, sub)

	sub.Cancel()
	sub.Cancel()

	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestSubscriptionKeepsOnlyLatestSnapshot(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	ctx := context.Background()

	sub := c.Subscribe(ctx, Query{})
	defer sub.Cancel()
	receive(t, sub)

	for i := 0; i < 3; i++ {
		_, err := c.Create(ctx, &model.Appointment{PatientName: fmt.Sprintf("P%d", i), DoctorID: "doc-1"})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		select {
		case recs := <-sub.C:
			return len(recs) == 3
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscriptionStopsWithContext(t *testing.T) {
	c := openAppointments(setupTestStore(t))
	ctx, cancel := context.WithCancel(context.Background())

	sub := c.Subscribe(ctx, Query{})
	receive(t, sub)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.C:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetAbsentLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	dsn := fmt.Sprintf("file:testdb_store_quiet_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(&buf, "", 0), logger.Config{LogLevel: logger.Error}),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Appointment{}))

	c := openAppointments(NewSQL(db, NewLocalNotifier()))
	got, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, buf.String())
}
