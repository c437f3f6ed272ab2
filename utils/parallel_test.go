package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.viam.com/test"
	gutils "go.viam.com/utils"
)

func TestGroupWorkParallel(t *testing.T) {
	for _, size := range []int{1, 7, 100, 1001} {
		var visited int64
		seen := make([]int32, size)
		err := GroupWorkParallel(context.Background(), size, func(_, _, _, _ int) MemberWorkFunc {
			return func(_, workNum int) {
				atomic.AddInt64(&visited, 1)
				atomic.AddInt32(&seen[workNum], 1)
			}
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, visited, test.ShouldEqual, int64(size))
		for _, count := range seen {
			test.That(t, count, test.ShouldEqual, int32(1))
		}
	}
	test.That(t, GroupWorkParallel(context.Background(), 0, nil), test.ShouldBeNil)
}

func TestRunInParallel(t *testing.T) {
	wait100ms := func(ctx context.Context) error {
		gutils.SelectContextOrWait(ctx, 100*time.Millisecond)
		return ctx.Err()
	}

	_, err := RunInParallel(context.Background(), []SimpleFunc{wait100ms, wait100ms})
	test.That(t, err, test.ShouldBeNil)

	errFunc := func(ctx context.Context) error {
		return errors.New("bad")
	}

	elapsed, err := RunInParallel(context.Background(), []SimpleFunc{wait100ms, wait100ms, errFunc})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, elapsed, test.ShouldBeLessThan, 90*time.Millisecond)

	panicFunc := func(ctx context.Context) error {
		panic(1)
	}

	_, err = RunInParallel(context.Background(), []SimpleFunc{panicFunc})
	test.That(t, err, test.ShouldNotBeNil)
}
