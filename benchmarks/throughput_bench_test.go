package benchmarks

import "testing"

// BenchmarkChainRunThroughput measures end-to-end Run throughput for a
// single-snap simulation whose initialization schedules a chain of
// self-rescheduling events, one simulated tick apart. Unlike a
// goroutine-pool benchmark, the engine here is single-threaded and
// deterministic: all the cost is in heap operations and StateTransition
// composition, not synchronization.
func BenchmarkChainRunThroughput(b *testing.B) {
	const chainLength = 1_000

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := GenChainRun(chainLength); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
	b.ReportMetric(float64(b.N*chainLength)/b.Elapsed().Seconds(), "events/second")
}

// BenchmarkChainRunStackSafety schedules a long chain (on the order of
// spec's million-event stress scenario) to confirm Run's explicit loop keeps
// stack depth flat regardless of chain length, rather than growing with the
// number of scheduled events the way a recursive dispatch loop would.
func BenchmarkChainRunStackSafety(b *testing.B) {
	const chainLength = 1_000_000

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GenChainRun(chainLength); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
	b.ReportMetric(float64(b.N*chainLength)/b.Elapsed().Seconds(), "events/second")
}
