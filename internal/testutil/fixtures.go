package testutil

// Thread ids used by SampleBuild.
const (
	MainThread     = 0
	CriticalThread = 1
	GCThread       = 2
	FirstEvaluator = 10
)

// SampleBuild returns a small but complete Bazel profile:
//
//   - phase markers from "Launch Blaze" (-2s) to "Complete build" (65s),
//     with a final event ending at 66s
//   - four skyframe evaluator threads running four actions
//   - a critical path of four components, three of which match an action
//     within tolerance
//   - three major GCs (one straddling the start of execution) and a minor GC
//   - CPU and memory counter series
func SampleBuild() *TraceBuilder {
	const pid = 1
	const marker = "build phase marker"
	const action = "action processing"
	const critical = "critical path component"
	const gc = "gc notification"

	b := NewTrace().
		OtherData("bazel_version", "release 7.1.0").
		OtherData("build_id", "8f0c2b6e-2d4a-4c1e-9a53-b6a7f4a1d001").
		OtherData("output_base", "/home/dev/.cache/bazel/_bazel_dev/abc").
		ThreadName(pid, MainThread, "Main Thread").
		SortIndex(pid, MainThread, 0).
		ThreadName(pid, CriticalThread, "Critical Path").
		SortIndex(pid, CriticalThread, 1).
		ThreadName(pid, GCThread, "Garbage Collector").
		SortIndex(pid, GCThread, 2)

	for i := 0; i < 4; i++ {
		b.ThreadName(pid, FirstEvaluator+i, "skyframe-evaluator-"+string(rune('0'+i)))
		b.SortIndex(pid, FirstEvaluator+i, 10+i)
	}

	b.Instant(pid, MainThread, marker, "Launch Blaze", -2_000_000).
		Instant(pid, MainThread, marker, "Initialize command", 0).
		Instant(pid, MainThread, marker, "Evaluate target patterns", 500_000).
		Instant(pid, MainThread, marker, "Load and analyze dependencies", 1_000_000).
		Instant(pid, MainThread, marker, "Prepare for build", 4_000_000).
		Instant(pid, MainThread, marker, "Build artifacts", 5_000_000).
		Instant(pid, MainThread, marker, "Complete build", 65_000_000).
		Complete(pid, MainThread, "general information", "Finishing", 65_000_000, 1_000_000)

	b.Complete(pid, FirstEvaluator, action, "Compiling a.cc", 5_000_000, 20_000_000).
		Complete(pid, FirstEvaluator+1, action, "Compiling b.cc", 5_100_000, 10_000_000).
		Complete(pid, FirstEvaluator+2, action, "Linking app", 25_000_500, 30_000_000).
		Complete(pid, FirstEvaluator+3, action, "Testing //app:test", 55_001_000, 9_000_000)

	b.Complete(pid, CriticalThread, critical, "action 'Compiling a.cc'", 5_000_400, 19_999_800).
		Complete(pid, CriticalThread, critical, "action 'Linking app'", 25_000_300, 30_000_000).
		Complete(pid, CriticalThread, critical, "action 'Writing manifest'", 55_000_400, 500).
		Complete(pid, CriticalThread, critical, "action 'Testing //app:test'", 55_001_200, 8_999_000)

	b.Complete(pid, GCThread, gc, "major GC", 3_000_000, 400_000).
		Complete(pid, GCThread, gc, "major GC", 4_900_000, 200_000).
		Complete(pid, GCThread, gc, "major GC", 30_000_000, 1_500_000).
		Complete(pid, GCThread, gc, "minor GC", 31_000_000, 50_000)

	b.Counter(pid, "CPU usage (Bazel)", "cpu", 0, 2.5).
		Counter(pid, "CPU usage (Bazel)", "cpu", 1_000_000, 7.25).
		Counter(pid, "Memory usage (Bazel)", "memory", 0, 512).
		Counter(pid, "Memory usage (Bazel)", "memory", 1_000_000, 1024.5)

	return b
}
