package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/rofleksey/refl"
	"github.com/rs/zerolog/log"
)

// prompter reads lines of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl reads statements from ln and executes them in the VM's root scope
// until input ends. The result of each top-level statement is written to out.
// Errors are written to errs; evaluation continues with the next statement.
func repl(vm *refl.VM, ln prompter, cfg Config, out, errs io.Writer) {
	for {
		src, ok := readStatement(vm, ln, cfg)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		prog, err := vm.Parse(strings.NewReader(src), "<repl>")
		if err != nil {
			fmt.Fprintln(errs, err)
			continue
		}
		runEach(vm, prog, out, errs)
	}
}

// runEach executes a program statement by statement in the VM's root scope,
// reporting each result. An interrupt signal cancels the execution.
func runEach(vm *refl.VM, prog *refl.Program, out, errs io.Writer) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	err := vm.ExecuteEach(ctx, prog, vm.Root, func(v refl.Value, err error) {
		if err != nil {
			fmt.Fprintln(errs, err)
			return
		}
		fmt.Fprintln(out, v.AsString())
	})
	if err != nil {
		fmt.Fprintln(errs, err)
	}
	log.Debug().Str("label", prog.Label).Dur("elapsed", time.Since(start)).Err(err).Msg("executed")
}

// readStatement reads lines until they form a complete source or fail to
// parse for a reason other than ending early. The result is false when input
// has ended.
func readStatement(vm *refl.VM, ln prompter, cfg Config) (string, bool) {
	var b strings.Builder
	for {
		p := cfg.Prompt
		if b.Len() > 0 {
			p = cfg.Continuation
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Abandon the statement in progress.
			b.Reset()
			continue
		}
		if err != nil {
			log.Error().Err(err).Msg("reading input")
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if _, err := vm.Parse(strings.NewReader(src), "<repl>"); refl.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// run executes a source in the VM's root scope. An interrupt signal cancels
// the execution.
func run(vm *refl.VM, src io.Reader, label string) (refl.Value, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	v, err := vm.DoReader(ctx, src, label)
	log.Debug().Str("label", label).Dur("elapsed", time.Since(start)).Err(err).Msg("executed")
	return v, err
}

// runREPL starts an interactive session on the terminal.
func runREPL(vm *refl.VM, cfg Config) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warn().Err(err).Str("file", cfg.History).Msg("couldn't read history")
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.History)
			if err != nil {
				log.Warn().Err(err).Str("file", cfg.History).Msg("couldn't save history")
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warn().Err(err).Str("file", cfg.History).Msg("couldn't save history")
			}
		}()
	}
	fmt.Printf("refl %s. Ctrl+C cancels input, Ctrl+D exits.\n", refl.Version)
	repl(vm, ln, cfg, os.Stdout, os.Stderr)
}
