package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockOverdueNotifier is a mock implementation of OverdueNotifier
type MockOverdueNotifier struct {
	mock.Mock
}

func (m *MockOverdueNotifier) NotifyOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestOverdueJob_Run_Success(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := new(MockOverdueNotifier)
	notifier.On("NotifyOverdue", mock.Anything).Return(3, nil).Once()

	NewOverdueJob(notifier, time.Second, zap.New(core)).Run()

	notifier.AssertExpectations(t)
	completed := logs.FilterMessage("Overdue task scan completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(3), completed[0].ContextMap()["tasks_notified"])
}

func TestOverdueJob_Run_Error(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := new(MockOverdueNotifier)
	notifier.On("NotifyOverdue", mock.Anything).Return(0, errors.New("database unavailable")).Once()

	NewOverdueJob(notifier, time.Second, zap.New(core)).Run()

	notifier.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Overdue task scan failed").Len())
	assert.Zero(t, logs.FilterMessage("Overdue task scan completed").Len())
}

func TestOverdueJob_Run_PassesDeadline(t *testing.T) {
	notifier := new(MockOverdueNotifier)
	notifier.On("NotifyOverdue", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(0, nil).Once()

	NewOverdueJob(notifier, 0, zap.NewNop()).Run()

	notifier.AssertExpectations(t)
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	job := NewOverdueJob(new(MockOverdueNotifier), time.Second, zap.NewNop())

	_, err := s.Register("overdue", "not a schedule", job)
	assert.Error(t, err)
	assert.Zero(t, s.Len())

	_, err = s.Register("overdue", "@every 1h", job)
	require.NoError(t, err)
	_, err = s.Register("overdue-nightly", "0 2 * * *", job)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestScheduler_WrappedJobRecoversPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScheduler(zap.New(core))

	id, err := s.Register("boom", "@every 1h", panicJob{})
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.cron.Entry(id).WrappedJob.Run() })
	assert.Equal(t, 1, logs.FilterMessage("panic").Len())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}

type panicJob struct{}

func (panicJob) Run() { panic("job exploded") }
