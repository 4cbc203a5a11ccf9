// Package profile provides optional runtime profiling for the props command.
//
// Profiling is compiled in only with the "pprof" build tag, which wires
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers used
// by the serve command. Without the tag, [Modes] is empty and
// [Profiler.Start] returns a no-op.
//
//	go build -tags pprof .
//	props --pprof-mode cpu get app.properties db.host
//	go tool pprof -http=: ~/.cache/props/pprof/cpu.pprof
package profile
