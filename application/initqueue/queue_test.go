package initqueue

import (
	stdErrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietQueue() *Queue {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestQueue_RunInInsertionOrderOnce(t *testing.T) {
	q := quietQueue()
	var order []string
	require.NoError(t, q.Enqueue(func() { order = append(order, "f") }))
	require.NoError(t, q.Enqueue(func() { order = append(order, "g") }))
	assert.Equal(t, 2, q.Len())
	assert.False(t, q.Done())

	require.NoError(t, q.Run())
	assert.Equal(t, []string{"f", "g"}, order)
	assert.True(t, q.Done())
	assert.Equal(t, 0, q.Len())

	err := q.Run()
	var initErr *errors.InitQueueError
	require.True(t, stdErrors.As(err, &initErr))
	assert.Equal(t, "run", initErr.Operation)
	assert.True(t, stdErrors.Is(err, errors.ErrAlreadyRun))
	assert.Equal(t, []string{"f", "g"}, order, "callbacks must not re-run")
}

func TestQueue_EmptyRun(t *testing.T) {
	q := quietQueue()
	require.NoError(t, q.Run())
	assert.True(t, q.Done())
}

func TestQueue_EnqueueAfterRunRejected(t *testing.T) {
	q := quietQueue()
	require.NoError(t, q.Run())

	err := q.Enqueue(func() {})
	var initErr *errors.InitQueueError
	require.True(t, stdErrors.As(err, &initErr))
	assert.Equal(t, "enqueue", initErr.Operation)
	assert.True(t, stdErrors.Is(err, errors.ErrAlreadyRun))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_EnqueueDuringRunRejected(t *testing.T) {
	q := quietQueue()
	var nested error
	ranNested := false
	require.NoError(t, q.Enqueue(func() {
		nested = q.Enqueue(func() { ranNested = true })
	}))

	require.NoError(t, q.Run())
	assert.ErrorIs(t, nested, errors.ErrAlreadyRun)
	assert.False(t, ranNested)
}

func TestQueue_EnqueueNil(t *testing.T) {
	q := quietQueue()
	err := q.Enqueue(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be nil")
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PanicPropagates(t *testing.T) {
	q := quietQueue()
	second := false
	require.NoError(t, q.Enqueue(func() { panic("asset missing") }))
	require.NoError(t, q.Enqueue(func() { second = true }))

	assert.PanicsWithValue(t, "asset missing", func() { _ = q.Run() })
	assert.False(t, second)
	assert.True(t, q.Done())
	assert.ErrorIs(t, q.Run(), errors.ErrAlreadyRun)
}
