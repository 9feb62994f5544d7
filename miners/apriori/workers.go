package apriori

import (
	"math/rand"
	"sync"
)

// workers is a fixed pool of goroutines executing submitted closures.
// Do hands f to the first idle worker and blocks on a random one when all
// are busy.
type workers struct {
	workers []*worker
	wg      sync.WaitGroup
}

func newWorkers(n int) *workers {
	if n < 1 {
		n = 1
	}
	wkrs := &workers{
		workers: make([]*worker, 0, n),
	}
	for i := 0; i < n; i++ {
		w := &worker{
			in: make(chan func()),
			wg: &wkrs.wg,
		}
		wkrs.wg.Add(1)
		go w.work()
		wkrs.workers = append(wkrs.workers, w)
	}
	return wkrs
}

func (w *workers) Size() int {
	return len(w.workers)
}

func (w *workers) Stop() {
	workers := w.workers
	w.workers = nil
	for _, wrkr := range workers {
		close(wrkr.in)
	}
	w.wg.Wait()
}

func (w *workers) Do(f func()) {
	workers := w.workers
	offset := rand.Intn(len(workers))
	for i := 0; i < len(workers); i++ {
		j := (offset + i) % len(workers)
		wrkr := workers[j].in
		select {
		case wrkr <- f:
			return
		default:
		}
	}
	workers[offset].in <- f
}

type worker struct {
	in chan func()
	wg *sync.WaitGroup
}

func (w *worker) work() {
	defer w.wg.Done()
	for f := range w.in {
		f()
	}
}
