// Package parallel runs a transform over a list of items with a fixed number
// of workers, each of which owns one contiguous range of item indexes.
//
// Work is split up front by [Partition] and never rebalanced. Because ranges
// are disjoint, workers share no mutable state and need no locks; the only
// synchronization is the join at the end of [Execute].
package parallel

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/chunkpress"
)

// WorkRange is the half-open range of item indexes [Start, End) assigned to a
// single worker.
type WorkRange struct {
	Start int
	End   int
}

// Len gives the number of items in the range.
func (r WorkRange) Len() int {
	return r.End - r.Start
}

// Empty is true if the worker for this range has nothing to do.
func (r WorkRange) Empty() bool {
	return r.End <= r.Start
}

func (r WorkRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// MaxRanges is the largest number of ranges [Partition] will allocate.
const MaxRanges = 1 << 20

// EffectiveWorkers gives the number of workers that can be given at least one
// of `itemCount` items, never more than `workerCount`. With no items, one
// worker is still used. Partitioning among this many workers instead of
// `workerCount` assigns the same items in the same order.
func EffectiveWorkers(itemCount, workerCount int) int {
	if itemCount < 1 {
		itemCount = 1
	}
	if workerCount > itemCount {
		return itemCount
	}
	return workerCount
}

// Partition divides `itemCount` items among `workerCount` workers. Worker `t`
// gets `[t*perWorker, (t+1)*perWorker)` where `perWorker` is itemCount divided
// by workerCount, rounded up, with both ends clamped to `itemCount`.
//
// Exactly `workerCount` ranges are returned. If there are more workers than
// items, the trailing workers get empty ranges. Asking for more than
// [MaxRanges] ranges fails with [chunkpress.ErrInvalidWorkerCount]; use
// [EffectiveWorkers] first to drop workers that would have nothing to do.
func Partition(itemCount, workerCount int) ([]WorkRange, error) {
	if workerCount <= 0 {
		return nil, chunkpress.ErrInvalidWorkerCount.WithMessage(
			fmt.Sprintf("got %d", workerCount))
	}
	if workerCount > MaxRanges {
		return nil, chunkpress.ErrInvalidWorkerCount.WithMessage(
			fmt.Sprintf("can't split work into %d ranges, the limit is %d", workerCount, MaxRanges))
	}
	if itemCount < 0 {
		return nil, chunkpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("item count can't be negative, got %d", itemCount))
	}

	perWorker := itemCount / workerCount
	if itemCount%workerCount != 0 {
		perWorker++
	}
	ranges := make([]WorkRange, workerCount)
	for t := range ranges {
		ranges[t] = WorkRange{
			Start: boundary(t, perWorker, itemCount),
			End:   boundary(t+1, perWorker, itemCount),
		}
	}
	return ranges, nil
}

// ValidateRanges checks that `ranges` cover every index in [0, itemCount)
// exactly once. It returns an error describing the first problem found, or nil
// if the ranges are a proper partition.
func ValidateRanges(ranges []WorkRange, itemCount int) error {
	covered := bitmap.New(itemCount)

	for worker, r := range ranges {
		if r.Start < 0 || r.End > itemCount || r.Start > r.End {
			return chunkpress.ErrInvalidArgument.WithMessage(
				fmt.Sprintf(
					"range %s of worker %d not within [0, %d)",
					r,
					worker,
					itemCount,
				),
			)
		}

		for i := r.Start; i < r.End; i++ {
			if covered.Get(i) {
				return chunkpress.ErrInvalidArgument.WithMessage(
					fmt.Sprintf("item %d assigned twice (again to worker %d)", i, worker))
			}
			covered.Set(i, true)
		}
	}

	for i := 0; i < itemCount; i++ {
		if !covered.Get(i) {
			return chunkpress.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("item %d not assigned to any worker", i))
		}
	}
	return nil
}

// boundary gives `worker * perWorker` clamped to `itemCount`, without
// overflowing when the product is past the end.
func boundary(worker, perWorker, itemCount int) int {
	if perWorker == 0 || worker > itemCount/perWorker {
		return itemCount
	}
	return worker * perWorker
}
