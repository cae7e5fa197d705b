package render

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WorkerPool owns a fixed number of workers, each with its own task
// queue; tiles are pushed round-robin and completed out of order (spec
// §4.6). The top-level join across workers is layered over the queues
// with errgroup rather than a hand-rolled sync.WaitGroup.
type WorkerPool struct {
	queues []chan Tile
	next   int
}

// NewWorkerPool creates numWorkers empty task queues. numWorkers <= 0
// selects runtime.NumCPU().
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	queues := make([]chan Tile, numWorkers)
	for i := range queues {
		queues[i] = make(chan Tile, 1)
	}
	return &WorkerPool{queues: queues}
}

// NumWorkers reports the pool's worker count.
func (wp *WorkerPool) NumWorkers() int { return len(wp.queues) }

// Submit appends each tile to the next worker's queue, round-robin,
// starting from worker 0 on every call.
func (wp *WorkerPool) Submit(tiles []Tile) {
	for i := range wp.queues {
		close(wp.queues[i])
		wp.queues[i] = make(chan Tile, countForWorker(len(tiles), len(wp.queues), i))
	}
	wp.next = 0
	for _, t := range tiles {
		wp.queues[wp.next] <- t
		wp.next = (wp.next + 1) % len(wp.queues)
	}
	for _, q := range wp.queues {
		close(q)
	}
}

func countForWorker(total, workers, idx int) int {
	n := total / workers
	if idx < total%workers {
		n++
	}
	return n
}

// Run dispatches tiles across the pool's workers and blocks until every
// worker has drained its queue or the quit flag is observed. render is
// invoked once per tile with a deterministic per-tile RNG (spec §5:
// "each worker owns its own RNG state, seeded from a per-tile value").
func (wp *WorkerPool) Run(ctx context.Context, tiles []Tile, quit *atomic.Bool, render func(ctx context.Context, tile Tile, rng *rand.Rand) error) error {
	wp.Submit(tiles)

	g, ctx := errgroup.WithContext(ctx)
	for _, queue := range wp.queues {
		queue := queue
		g.Go(func() error {
			for tile := range queue {
				if quit != nil && quit.Load() {
					return nil
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rng := rand.New(rand.NewSource(tile.Seed))
				if err := render(ctx, tile, rng); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
