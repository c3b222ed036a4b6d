package parallel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dargueta/chunkpress"
	"github.com/hashicorp/go-multierror"
)

// Transform converts a single item. `index` is the item's position in the full
// input, not within the worker's range.
type Transform[In any, Out any] func(index int, item In) (Out, error)

// Execute applies `transform` to every item, spawning one goroutine per range
// in `ranges`, and returns the results in the same order as `items`. It blocks
// until every worker has finished.
//
// Each worker is handed only its own slices of the input and the output, so no
// two workers can touch the same slot. A worker stops at the first item it
// fails to transform; other workers run to completion regardless. If any
// worker failed, all of their errors are returned together and the results are
// discarded.
//
// `ranges` must partition the items exactly; see [ValidateRanges].
func Execute[In any, Out any](
	items []In,
	ranges []WorkRange,
	transform Transform[In, Out],
) ([]Out, error) {
	err := ValidateRanges(ranges, len(items))
	if err != nil {
		return nil, err
	}

	results := make([]Out, len(items))
	workerErrors := make([]error, len(ranges))
	var wg sync.WaitGroup

	for worker, r := range ranges {
		wg.Add(1)
		go func(worker, start int, source []In, destination []Out) {
			defer wg.Done()
			workerErrors[worker] = runWorker(start, source, destination, transform)
		}(
			worker,
			r.Start,
			items[r.Start:r.End:r.End],
			results[r.Start:r.End:r.End],
		)
	}

	wg.Wait()

	var allErrors *multierror.Error
	for _, err := range workerErrors {
		if err != nil {
			allErrors = multierror.Append(allErrors, err)
		}
	}
	if allErrors != nil {
		allErrors.ErrorFormat = formatWorkerErrors
		return nil, allErrors
	}
	return results, nil
}

// ExecuteWithWorkers is a convenience wrapper that partitions `items` among
// `workerCount` workers with [Partition] and then calls [Execute]. Any positive
// `workerCount` is accepted; workers beyond the number of items would get empty
// ranges, so they're never started.
func ExecuteWithWorkers[In any, Out any](
	items []In,
	workerCount int,
	transform Transform[In, Out],
) ([]Out, error) {
	if workerCount <= 0 {
		return nil, chunkpress.ErrInvalidWorkerCount.WithMessage(
			fmt.Sprintf("got %d", workerCount))
	}

	ranges, err := Partition(len(items), EffectiveWorkers(len(items), workerCount))
	if err != nil {
		return nil, err
	}
	return Execute(items, ranges, transform)
}

func runWorker[In any, Out any](
	start int,
	source []In,
	destination []Out,
	transform Transform[In, Out],
) error {
	for i, item := range source {
		result, err := transform(start+i, item)
		if err != nil {
			return fmt.Errorf("item %d: %w", start+i, err)
		}
		destination[i] = result
	}
	return nil
}

func formatWorkerErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("%d workers failed: %s", len(errs), strings.Join(messages, "; "))
}
