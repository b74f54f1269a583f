package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReturnsFutureResult(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	fut := Submit(pool, func() (int, error) { return 42, nil })
	v, err := fut.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestTaskGroupWaitRethrowsFirstError(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	group := NewTaskGroup(pool)
	errA := errors.New("task a failed")
	group.Go(func() error { return errA })
	group.Go(func() error { return errors.New("task b failed") })
	group.Go(func() error { return nil })

	err := group.Wait()
	require.Error(t, err)
}

func TestTaskGroupWaitReturnsNilWhenAllSucceed(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	group := NewTaskGroup(pool)
	for range 10 {
		group.Go(func() error { return nil })
	}
	assert.NoError(t, group.Wait())
}
