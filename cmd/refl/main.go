// Command refl runs refl programs. Given a file, it executes it; otherwise it
// starts an interactive session.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rofleksey/refl"
	// import for side effects
	_ "github.com/rofleksey/refl/coreext"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML configuration file")
		trace      = flag.Bool("trace", false, "log every evaluated statement")
		logLevel   = flag.String("log-level", "", "log level (trace, debug, info, warn, error); overrides the config")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading configuration")
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *trace {
		cfg.Trace = true
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(lvl)
	if cfg.Trace && lvl > zerolog.TraceLevel {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	vm := refl.NewVM()
	if err := cfg.Apply(vm); err != nil {
		log.Fatal().Err(err).Msg("binding globals")
	}
	vm.SetFunction("profiled", profiled)
	if cfg.Trace {
		vm.Tracer = refl.TracerFunc(traceNode)
		vm.SetDebug(true)
	}

	if flag.NArg() == 0 {
		runREPL(vm, cfg)
		return
	}
	os.Exit(runFile(vm, flag.Arg(0)))
}

// runFile executes a source file and returns the process exit code.
func runFile(vm *refl.VM, path string) int {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("opening program")
		return 1
	}
	defer f.Close()
	if _, err := run(vm, f, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// traceNode logs a statement about to be evaluated.
func traceNode(node refl.Node, scope *refl.Scope) {
	log.Trace().Stringer("pos", node.Pos()).Str("node", fmt.Sprintf("%T", node)).Msg("eval")
}

// profiled is a builtin available in the command-line front end.
//
// profiled(cpu, mem, f) calls f with CPU profiling written to the file cpu,
// then writes a heap profile to the file mem. The result is the result of f.
func profiled(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	cpu, ok := call.ArgAt(0).Str()
	if !ok {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: argument 0 must be a string, not %s", call.ArgAt(0).Kind())
	}
	mem, ok := call.ArgAt(1).Str()
	if !ok {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: argument 1 must be a string, not %s", call.ArgAt(1).Kind())
	}
	cf, err := os.Create(cpu)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: %w", err)
	}
	defer cf.Close()
	mf, err := os.Create(mem)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: %w", err)
	}
	defer mf.Close()
	if err = pprof.StartCPUProfile(cf); err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: %w", err)
	}
	v, stop, err := call.ArgAt(2).Call(vm, &refl.Call{Sender: call.Sender})
	pprof.StopCPUProfile()
	if err != nil {
		return v, stop, err
	}
	runtime.GC()
	if err = pprof.WriteHeapProfile(mf); err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("profiled: %w", err)
	}
	return v, stop, nil
}
