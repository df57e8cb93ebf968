// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command objpoolbench is a minimal runnable example of the benchmark
// harness described in spec.md §6: it is not a first-class deliverable
// of this module, only a demonstration of the interface the harness
// consumes (Init/Acquire/Release/Fini).
//
// It spawns one worker goroutine per logical P, each pinned for its
// lifetime via runtime.LockOSThread the way the original kernel module
// (original_source/scalable/kmod.c) pins one kernel thread per CPU.
// Each worker runs a bounded "tasklet" — a closure that acquires a
// batch, optionally sleeps briefly, and releases the batch — once per
// tick of a high-resolution ticker, the Go analogue of kmod.c's
// hrtimer+tasklet pair. Hit/miss counts are tallied per worker with
// code.hybscloud.com/atomix counters and summed at the end, mirroring
// kmod.c's per-cpu nhits/nmiss fields.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"code.hybscloud.com/objpool"
)

type traceRecord struct {
	timestampNanos int64
	eventID        uint32
}

type workerStats struct {
	_    [64]byte
	hits atomix.Int64
	_    [64]byte
	miss atomix.Int64
	_    [64]byte
}

func main() {
	var (
		total    = flag.Int("total", 4096, "total objects in the pool")
		bulk     = flag.Int("bulk", 4, "acquire/release batch size per tasklet tick")
		duration = flag.Duration("duration", 2*time.Second, "benchmark duration")
		tick     = flag.Duration("tick", time.Millisecond, "tasklet tick period (hrtimer analogue)")
		sleep    = flag.Duration("sleep", 0, "optional microsleep held between acquire and release")
	)
	flag.Parse()

	p, err := objpool.Init[traceRecord](*total, 0, objpool.AllocHintNormal)
	if err != nil {
		panic(err)
	}

	numWorkers := runtime.GOMAXPROCS(0)
	stats := make([]workerStats, numWorkers)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			ticker := time.NewTicker(*tick)
			defer ticker.Stop()

			held := make([]traceRecord, 0, *bulk)
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					runTasklet(p, &stats[w], &held, *bulk, *sleep)
				}
			}
		}(w)
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()

	var nhits, nmiss int64
	for i := range stats {
		nhits += stats[i].hits.Load()
		nmiss += stats[i].miss.Load()
	}
	fmt.Printf("workers=%d bulk=%d duration=%s hits=%d miss=%d\n", numWorkers, *bulk, *duration, nhits, nmiss)
}

// runTasklet is the bounded unit of work a worker performs per tick:
// acquire up to bulk objects, hold them for an optional microsleep,
// then release everything acquired. Acquire misses use an iox.Backoff
// the way the rest of this ecosystem backs off a would-block signal,
// and are tallied rather than retried indefinitely — the harness
// measures contention, it does not hide it.
func runTasklet(p *objpool.Pool[traceRecord], st *workerStats, held *[]traceRecord, bulk int, sleep time.Duration) {
	backoff := iox.Backoff{}
	for i := 0; i < bulk; i++ {
		obj, err := p.Acquire()
		if err != nil {
			st.miss.Add(1)
			backoff.Wait()
			continue
		}
		st.hits.Add(1)
		*held = append(*held, obj)
	}

	if sleep > 0 {
		time.Sleep(sleep)
	}

	for _, obj := range *held {
		_ = p.Release(obj)
	}
	*held = (*held)[:0]
}
