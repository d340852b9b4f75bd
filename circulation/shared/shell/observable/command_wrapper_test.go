package observable_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/testutil/testdoubles"
)

type mockCommand struct {
	name string
}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCommandHandler struct {
	mu     sync.Mutex
	result shell.HandlerResult
	err    error
	calls  []mockCommand
}

func (h *mockCommandHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func newWrapper(
	t *testing.T,
	handler *mockCommandHandler,
) (*observable.CommandWrapper[mockCommand], *testdoubles.MetricsCollectorSpy, *testdoubles.TracingCollectorSpy, *testdoubles.ContextualLoggerSpy) {

	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	logger := testdoubles.NewContextualLoggerSpy()

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metrics),
		observable.WithCommandTracing[mockCommand](tracing),
		observable.WithCommandLogging[mockCommand](logger),
	)
	require.NoError(t, err)

	return wrapper, metrics, tracing, logger
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}
	handler := &mockCommandHandler{result: expectedResult}
	wrapper, metrics, tracing, logger := newWrapper(t, handler)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{name: "reserve"})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	require.Len(t, handler.calls, 1)
	assert.Equal(t, "reserve", handler.calls[0].name)

	assert.True(t, metrics.HasMetric(shell.CommandHandlerCallsMetric, shell.BuildCommandLabels("TestCommand", shell.StatusSuccess)))
	assert.True(t, metrics.HasMetric(shell.CommandHandlerDurationMetric, shell.BuildCommandLabels("TestCommand", shell.StatusSuccess)))
	assert.Empty(t, metrics.RecordsFor(shell.CommandHandlerRetryDelayMetric))

	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
	assert.Equal(t, shell.StatusSuccess, spans[0].Status)
	assert.True(t, spans[0].Finished)

	assert.True(t, logger.HasLog("info", shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_Idempotent(t *testing.T) {
	handler := &mockCommandHandler{result: shell.HandlerResult{Idempotent: true, RetryAttempts: 1}}
	wrapper, metrics, _, _ := newWrapper(t, handler)

	_, err := wrapper.Handle(context.Background(), mockCommand{})

	assert.NoError(t, err)
	assert.True(t, metrics.HasMetric(shell.CommandHandlerIdempotentMetric, map[string]string{shell.LogAttrCommandType: "TestCommand"}))
}

func Test_CommandWrapper_Handle_Rejection(t *testing.T) {
	rejection := core.InvalidTransition(core.DescriptionAlreadyBorrowedBySomeoneElse)
	handler := &mockCommandHandler{result: shell.HandlerResult{RetryAttempts: 1}, err: rejection}
	wrapper, metrics, tracing, logger := newWrapper(t, handler)

	_, err := wrapper.Handle(context.Background(), mockCommand{})

	assert.ErrorIs(t, err, core.ErrInvalidTransition)
	assert.True(t, metrics.HasMetric(shell.CommandHandlerRejectedMetric, shell.BuildCommandLabels("TestCommand", shell.StatusRejected)))
	assert.Equal(t, shell.StatusRejected, tracing.Spans()[0].Status)
	assert.True(t, logger.HasLog("info", shell.LogMsgCommandRejected))
	assert.Equal(t, 0, logger.CountLogs("error"))
}

func Test_CommandWrapper_Handle_ExhaustedRetries(t *testing.T) {
	handler := &mockCommandHandler{
		result: shell.HandlerResult{RetryAttempts: 2, RetriesExhausted: true, LastErrorType: "concurrency_conflict"},
		err:    core.LostRace(eventstore.ErrConcurrencyConflict),
	}
	wrapper, metrics, _, logger := newWrapper(t, handler)

	_, err := wrapper.Handle(context.Background(), mockCommand{})

	assert.Error(t, err)
	assert.True(t, metrics.HasMetric(shell.CommandHandlerConcurrencyConflictMetric, map[string]string{shell.LogAttrCommandType: "TestCommand"}))
	assert.True(t, metrics.HasMetric(shell.CommandHandlerMaxRetriesReachedMetric, map[string]string{shell.LogAttrCommandType: "TestCommand"}))
	assert.Len(t, metrics.RecordsFor(shell.CommandHandlerRetryDelayMetric), 1)
	assert.True(t, logger.HasLog("error", shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_StoreFailure(t *testing.T) {
	handler := &mockCommandHandler{err: core.StoreFailure(errors.New("connection refused"))}
	wrapper, metrics, tracing, logger := newWrapper(t, handler)

	_, err := wrapper.Handle(context.Background(), mockCommand{})

	assert.ErrorIs(t, err, core.ErrStoreFailure)
	assert.True(t, metrics.HasMetric(shell.CommandHandlerCallsMetric, shell.BuildCommandLabels("TestCommand", shell.StatusError)))
	assert.Equal(t, shell.StatusError, tracing.Spans()[0].Status)
	assert.Contains(t, tracing.Spans()[0].Attributes[shell.LogAttrError], "connection refused")
	assert.True(t, logger.HasLog("error", shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_WithoutCollectors(t *testing.T) {
	handler := &mockCommandHandler{result: shell.HandlerResult{RetryAttempts: 1}}

	wrapper, err := observable.NewCommandWrapper[mockCommand](handler)
	require.NoError(t, err)

	_, err = wrapper.Handle(context.Background(), mockCommand{})

	assert.NoError(t, err)
}
