// Package parallel contains the bounded worker helpers used for read-only
// comparison work.
package parallel

import "runtime"
import "sync"
import "sync/atomic"

import "github.com/klauspost/cpuid/v2"

// Workers returns the number of goroutines worth running, the logical core
// count reported by cpuid, or runtime.NumCPU when cpuid could not tell.
func Workers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ForEach calls body for every i in [0, length) using at most limit
// goroutines and returns once all calls finished.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(limit)
	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}
	wg.Wait()
}
