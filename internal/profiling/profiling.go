package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timers. Call ResetFrame at the top of a frame and
// defer Track("pkg.Operation")() inside the work being measured.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Track returns a stop function that adds the elapsed time to name.
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCalls[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the totals collected for the current frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// Snapshot returns a copy of the current frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// Calls returns how many times name was tracked this frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameCalls[name]
}

// TopN formats the n most expensive entries of the current frame,
// e.g. "world.GenerateChunk:4.2ms x3, world.Draw:1.1ms".
func TopN(n int) string {
	mu.Lock()
	type entry struct {
		name  string
		dur   time.Duration
		calls int
	}
	list := make([]entry, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, entry{name: k, dur: v, calls: frameCalls[k]})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	n = min(max(n, 0), len(list))

	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.dur.Microseconds()) / 1000
		s := e.name + ":" + strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
		if e.calls > 1 {
			s += " x" + strconv.Itoa(e.calls)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
