package kafka

import (
	"context"
	"sync"
	"testing"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
	drained   chan struct{}
	closed    bool
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{drained: make(chan struct{})}
	for i, v := range values {
		r.messages = append(r.messages, kafka.Message{Offset: int64(i), Value: []byte(v)})
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		m := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	if len(r.messages) == 0 {
		select {
		case <-r.drained:
		default:
			close(r.drained)
		}
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

type mockContestedSetter struct {
	mock.Mock
}

func (m *mockContestedSetter) Handle(ctx context.Context, cmd commands.SetOrderContestedCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func runUntilDrained(t *testing.T, reader *fakeReader, handler contestedSetter) {
	t.Helper()
	consumer := NewDisputeConsumer(reader, handler, nil)
	consumer.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not drain the reader")
	}
	cancel()
	require.NoError(t, <-done)
	assert.True(t, reader.closed)
}

func isCommand(id kernel.UUID, contested bool) any {
	return mock.MatchedBy(func(cmd commands.SetOrderContestedCommand) bool {
		return cmd.OrderID() == id && cmd.Contested() == contested
	})
}

func TestDisputeConsumer_AppliesOpenedAndResolved(t *testing.T) {
	id := kernel.NewUUID()
	reader := newFakeReader(
		`{"orderId":"`+id.String()+`","event":"opened"}`,
		`{"orderId":"`+id.String()+`","event":"resolved"}`,
	)
	handler := new(mockContestedSetter)
	handler.On("Handle", mock.Anything, isCommand(id, true)).Return(nil).Once()
	handler.On("Handle", mock.Anything, isCommand(id, false)).Return(nil).Once()

	runUntilDrained(t, reader, handler)

	handler.AssertExpectations(t)
	assert.Equal(t, []int64{0, 1}, reader.committed)
}

func TestDisputeConsumer_CommitsMalformedMessagesWithoutHandling(t *testing.T) {
	reader := newFakeReader(
		`not json`,
		`{"orderId":"not-a-uuid","event":"opened"}`,
		`{"orderId":"`+kernel.NewUUID().String()+`","event":"escalated"}`,
	)
	handler := new(mockContestedSetter)

	runUntilDrained(t, reader, handler)

	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	assert.Equal(t, []int64{0, 1, 2}, reader.committed)
}

func TestDisputeConsumer_RetriesLockConflicts(t *testing.T) {
	id := kernel.NewUUID()
	reader := newFakeReader(`{"orderId":"` + id.String() + `","event":"opened"}`)
	stale := order.NewStaleOrderStateError(id.String(), nil)

	handler := new(mockContestedSetter)
	handler.On("Handle", mock.Anything, isCommand(id, true)).Return(stale).Twice()
	handler.On("Handle", mock.Anything, isCommand(id, true)).Return(nil).Once()

	runUntilDrained(t, reader, handler)

	handler.AssertNumberOfCalls(t, "Handle", 3)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestDisputeConsumer_GivesUpAfterMaxAttempts(t *testing.T) {
	id := kernel.NewUUID()
	reader := newFakeReader(`{"orderId":"` + id.String() + `","event":"opened"}`)

	handler := new(mockContestedSetter)
	handler.On("Handle", mock.Anything, mock.Anything).Return(order.NewStaleOrderStateError(id.String(), nil))

	runUntilDrained(t, reader, handler)

	handler.AssertNumberOfCalls(t, "Handle", maxAttempts)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestDisputeConsumer_UnknownOrderIsNotRetried(t *testing.T) {
	id := kernel.NewUUID()
	reader := newFakeReader(`{"orderId":"` + id.String() + `","event":"resolved"}`)

	handler := new(mockContestedSetter)
	handler.On("Handle", mock.Anything, mock.Anything).Return(errs.NewObjectNotFoundError("order", id.String())).Once()

	runUntilDrained(t, reader, handler)

	handler.AssertNumberOfCalls(t, "Handle", 1)
	assert.Equal(t, []int64{0}, reader.committed)
}
