package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg Message) error {
	return m.Called(ctx, msg).Error(0)
}

func samplePayload() Payload {
	return Payload{
		BookingID:    "b1",
		TrainerName:  "Tess Trainer",
		TrainerEmail: "tess@example.com",
		ClientName:   "Carl Client",
		ClientEmail:  "carl@example.com",
		SessionType:  "full session",
		Date:         "Monday, March 10, 2025",
		TimeRange:    "2:00 PM - 3:30 PM",
		Status:       "CONFIRMED",
	}
}

func TestNewSendTask(t *testing.T) {
	task, opts, err := NewSendTask(KindConfirmation, samplePayload())
	require.NoError(t, err)

	assert.Equal(t, TypeSend, task.Type())
	assert.Len(t, opts, 2)

	var n Notification
	require.NoError(t, json.Unmarshal(task.Payload(), &n))
	assert.Equal(t, KindConfirmation, n.Kind)
	assert.Equal(t, samplePayload(), n.Payload)
}

func TestQueueNotifier(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == TypeSend
	}), mock.Anything).Return(&asynq.TaskInfo{ID: "t1"}, nil).Once()

	err := NewQueueNotifier(enq).Notify(context.Background(), KindConfirmation, samplePayload())
	require.NoError(t, err)
	enq.AssertExpectations(t)
}

func TestQueueNotifier_EnqueueError(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("redis unavailable"))

	err := NewQueueNotifier(enq).Notify(context.Background(), KindConfirmation, samplePayload())
	assert.ErrorContains(t, err, "redis unavailable")
}

func TestHandleSendTask(t *testing.T) {
	task, _, err := NewSendTask(KindConfirmation, samplePayload())
	require.NoError(t, err)

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.To == "carl@example.com" && msg.Subject == "Session Confirmed: full session with Tess Trainer"
	})).Return(nil).Once()

	require.NoError(t, HandleSendTask(mailer, zap.NewNop())(context.Background(), task))
	mailer.AssertExpectations(t)
}

func TestHandleSendTask_BookingRequestReachesTrainer(t *testing.T) {
	task, _, err := NewSendTask(KindBookingRequested, samplePayload())
	require.NoError(t, err)

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.To == "tess@example.com"
	})).Return(nil).Once()

	require.NoError(t, HandleSendTask(mailer, zap.NewNop())(context.Background(), task))
	mailer.AssertExpectations(t)
}

func TestHandleSendTask_Errors(t *testing.T) {
	handler := func(m Mailer) asynq.HandlerFunc { return HandleSendTask(m, zap.NewNop()) }

	t.Run("invalid payload skips retry", func(t *testing.T) {
		err := handler(&mockMailer{})(context.Background(), asynq.NewTask(TypeSend, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("unknown kind is dropped", func(t *testing.T) {
		b, _ := json.Marshal(Notification{Kind: "CARRIER_PIGEON"})
		mailer := &mockMailer{}
		assert.NoError(t, handler(mailer)(context.Background(), asynq.NewTask(TypeSend, b)))
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("missing recipient skips retry", func(t *testing.T) {
		p := samplePayload()
		p.TrainerEmail = ""
		task, _, err := NewSendTask(KindBookingRequested, p)
		require.NoError(t, err)
		mailer := &mockMailer{}

		err = handler(mailer)(context.Background(), task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("mailer error is retried", func(t *testing.T) {
		task, _, err := NewSendTask(KindCancellation, samplePayload())
		require.NoError(t, err)
		mailer := &mockMailer{}
		mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		err = handler(mailer)(context.Background(), task)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
