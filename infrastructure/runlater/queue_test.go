package runlater

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

func TestQueue_FlushRunsInOrder(t *testing.T) {
	q := quietQueue()
	var order []string
	q.Enqueue(func() { order = append(order, "A") })
	q.Enqueue(func() { order = append(order, "B") })

	require.NoError(t, q.Flush())
	assert.Equal(t, []string{"A", "B"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_FlushIsReentrant(t *testing.T) {
	q := quietQueue()
	var order []string
	q.Enqueue(func() {
		order = append(order, "A")
		q.Enqueue(func() { order = append(order, "C") })
	})
	q.Enqueue(func() { order = append(order, "B") })

	require.NoError(t, q.Flush())
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_FlushEmpty(t *testing.T) {
	assert.NoError(t, quietQueue().Flush())
}

func TestQueue_PanicDoesNotStopFlush(t *testing.T) {
	q := quietQueue()
	var order []string
	q.Enqueue(func() { panic("first") })
	q.Enqueue(func() { order = append(order, "after") })
	q.Enqueue(func() { panic("second") })

	err := q.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Equal(t, []string{"after"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_EnqueueNilIgnored(t *testing.T) {
	q := quietQueue()
	q.Enqueue(nil)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_FatalPanicPropagates(t *testing.T) {
	q := quietQueue()
	var order []string
	q.Enqueue(func() { order = append(order, "before") })
	q.Enqueue(func() { panic(&errors.FatalError{Err: errors.NewAssertionError("boom")}) })
	q.Enqueue(func() { order = append(order, "after") })

	assert.PanicsWithError(t, "fatal: boom", func() { _ = q.Flush() })
	assert.Equal(t, []string{"before"}, order)
	assert.Equal(t, 1, q.Len())

	require.NoError(t, q.Flush())
	assert.Equal(t, []string{"before", "after"}, order)
}

func TestQueue_ErrorPanicIsWrapped(t *testing.T) {
	q := quietQueue()
	cause := stdErrors.New("disk gone")
	q.Enqueue(func() { panic(cause) })

	err := q.Flush()
	assert.ErrorIs(t, err, cause)
}
