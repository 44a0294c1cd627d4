package async

import (
	"context"
	"sync"
)

type Worker interface {
	Run(context.Context, func())
	Shutdown()
}

// Start launches every worker and returns a function that shuts them down
// and waits for their Run loops to return.
func Start(ctx context.Context, workers ...Worker) func() {
	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go w.Run(ctx, wg.Done)
	}

	return func() {
		for _, w := range workers {
			w.Shutdown()
		}
		wg.Wait()
	}
}
