// Package signals holds the interrupt-handling record for one command
// invocation.
//
// The [State] captures the one fact the interrupt handler needs: whether
// the current run executes workflow stages in parallel. It is written
// exactly once, during argument resolution, and only read afterwards.
// [Install] registers the process-level handler that consults it.
package signals

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/qwofford/popper/internal/log"
)

// State records the execution mode of the current invocation for the
// interrupt handler.
//
// A zero State means no run has started yet. [State.Record] is called once
// per command invocation, before any execution begins; the handler only
// ever reads.
type State struct {
	parallel bool
	recorded bool
}

// Record stores the execution mode of the run about to start.
func (s *State) Record(parallel bool) {
	s.parallel = parallel
	s.recorded = true
}

// Parallel reports whether the recorded run executes stages in parallel.
func (s *State) Parallel() bool {
	return s.parallel
}

// Recorded reports whether a run has been recorded yet.
func (s *State) Recorded() bool {
	return s.recorded
}

// Install registers the process interrupt handler. On SIGINT or SIGTERM
// the handler logs what cleanup the engine may have left behind and exits
// with the conventional interrupted status.
func Install(state *State, logger *log.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		handle(<-ch, state, logger)
		os.Exit(130)
	}()
}

// handle logs the interrupt and releases the attached log file, if any,
// so tee'd output is flushed before the process exits.
func handle(sig os.Signal, state *State, logger *log.Logger) {
	logInterrupt(sig, state, logger)
	logger.Close()
}

// logInterrupt reports the interrupt and, for parallel runs, warns that
// concurrently started containers may still be running.
func logInterrupt(sig os.Signal, state *State, logger *log.Logger) {
	logger.Warn("interrupted, stopping", "signal", sig.String())
	if state.Recorded() && state.Parallel() {
		logger.Warn("parallel stages may have left containers running; " +
			"check your runtime and clean up manually")
	}
}
