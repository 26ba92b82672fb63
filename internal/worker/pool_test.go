package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutePreservesOrder(t *testing.T) {
	pool := NewPool[int, string](3, func(_ context.Context, n int) (string, error) {
		return fmt.Sprint(n * 2), nil
	})
	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	assert.Len(t, tasks, 5)
	for i, task := range tasks {
		assert.True(t, task.Done)
		assert.Equal(t, i+1, task.Input)
		assert.Equal(t, fmt.Sprint((i+1)*2), task.Result)
	}
	assert.NoError(t, Errors(tasks))
}

func TestExecuteCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool[int, int](0, func(_ context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, boom
		}
		return n, nil
	})
	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4})
	assert.ErrorIs(t, Errors(tasks), boom)
	assert.NoError(t, tasks[0].Err)
	assert.ErrorIs(t, tasks[1].Err, boom)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := NewPool[int, int](2, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	tasks := pool.Execute(ctx, []int{1, 2, 3})
	assert.Len(t, tasks, 3)
}
