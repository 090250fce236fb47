package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

func newDutyService(t *testing.T) *DutyService {
	t.Helper()
	return NewDutyService(newTestRepository(t), newTestDispatcher(), zap.NewNop())
}

func TestClockInCleansAssignments(t *testing.T) {
	svc := newDutyService(t)

	session, err := svc.ClockIn(context.Background(), "user-1",
		[]string{"Patrol", "Patrol", " Supervisor ", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Patrol", "Supervisor"}, session.Assignments)
	assert.True(t, session.Open())
	assert.False(t, session.ClockIn.IsZero())
}

func TestClockInValidation(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "", []string{"Patrol"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_RECORD"))

	// a list that cleans down to nothing is as bad as no list at all
	_, err = svc.ClockIn(ctx, "user-1", []string{"", "  "})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_RECORD"))
}

func TestClockInRejectsSecondOpenSession(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "user-1", []string{"Patrol"})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, "user-1", []string{"Supervisor"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "ALREADY_ACTIVE"))

	// other users are unaffected
	_, err = svc.ClockIn(ctx, "user-2", []string{"Patrol"})
	require.NoError(t, err)
}

func TestClockOutCompletesSession(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	opened, err := svc.ClockIn(ctx, "user-1", []string{"Patrol"})
	require.NoError(t, err)

	before := time.Now()
	closed, err := svc.ClockOut(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, opened.ID, closed.ID)
	require.NotNil(t, closed.ClockOut)
	assert.False(t, closed.ClockOut.Before(before))
	assert.GreaterOrEqual(t, closed.Duration(), time.Duration(0))

	// a fresh session can start once the previous one is closed
	_, err = svc.ClockIn(ctx, "user-1", []string{"Patrol"})
	require.NoError(t, err)
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	svc := newDutyService(t)
	_, err := svc.ClockOut(context.Background(), "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestOpenSessionFor(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	_, err := svc.OpenSessionFor(ctx, "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	opened, err := svc.ClockIn(ctx, "user-1", []string{"Patrol"})
	require.NoError(t, err)

	found, err := svc.OpenSessionFor(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, opened.ID, found.ID)
}

func TestAllOpenSessionsInsertionOrder(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	for _, user := range []string{"user-1", "user-2", "user-3"} {
		_, err := svc.ClockIn(ctx, user, []string{"Patrol"})
		require.NoError(t, err)
	}
	_, err := svc.ClockOut(ctx, "user-2")
	require.NoError(t, err)

	open := svc.AllOpenSessions(ctx)
	require.Len(t, open, 2)
	assert.Equal(t, "user-1", open[0].UserID)
	assert.Equal(t, "user-3", open[1].UserID)
}

func TestConcurrentClockInSingleWinner(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()

	const attempts = 16
	var wins, rejections int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClockIn(ctx, "user-1", []string{"Patrol"})
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case apperrors.IsCode(err, "ALREADY_ACTIVE"):
				atomic.AddInt32(&rejections, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(attempts-1), rejections)
	assert.Len(t, svc.AllOpenSessions(ctx), 1)
}
