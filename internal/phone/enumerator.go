package phone

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// KnownValidCount is the number of valid candidates in the domain.
const KnownValidCount = 6699

// cancelCheckInterval bounds how often a range count polls its context.
const cancelCheckInterval = 10_000

// CountValid evaluates every candidate in the domain and returns how many are
// valid.
func CountValid() int {
	n, _ := countRange(context.Background(), 0, DomainSize)
	return n
}

// CountValidParallel splits the domain into contiguous ranges, counts each on
// its own goroutine and sums the partial counts. It only fails when ctx is
// done before the count completes.
func CountValidParallel(ctx context.Context, workers int) (int, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > DomainSize {
		workers = DomainSize
	}

	partials := make([]int, workers)
	chunk := (DomainSize + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, DomainSize)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			n, err := countRange(ctx, lo, hi)
			if err != nil {
				return err
			}
			partials[w] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range partials {
		total += n
	}
	return total, nil
}

// countRange counts valid candidates in [lo, hi).
func countRange(ctx context.Context, lo, hi int) (int, error) {
	count := 0
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if Evaluate(FormatCandidate(i)).IsValid {
			count++
		}
	}
	return count, nil
}
