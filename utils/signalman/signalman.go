// Package signalman coordinates graceful shutdown of the gofund
// process. Long-lived components register a stop hook at startup and
// the first termination signal drains them before the process exits.
package signalman

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"sync"
	"syscall"

	"github.com/alpacahq/gopaca/log"
)

type StopFunc func() error

var (
	mu    sync.Mutex
	hooks = map[string]StopFunc{}
	done  = make(chan struct{})
)

// Register adds a named stop hook. Hooks registered after a signal is
// already being handled may be skipped.
func Register(name string, f StopFunc) {
	mu.Lock()
	defer mu.Unlock()
	log.Debug("registered shutdown hook", "name", name)
	hooks[name] = f
}

// Wait blocks until a shutdown signal has been fully handled.
func Wait() {
	<-done
}

func drain() {
	mu.Lock()
	defer mu.Unlock()

	for name, stop := range hooks {
		if err := stop(); err != nil {
			log.Error("shutdown hook failed", "hook", name, "error", err)
		} else {
			log.Debug("shutdown hook finished", "hook", name)
		}
	}

	log.Info("gracefully terminated")
	close(done)
}

// Start begins listening for signals. SIGTERM and interrupt drain the
// registered hooks; SIGUSR1 dumps goroutine stacks for live debugging.
func Start() {
	sigs := make(chan os.Signal, 1)

	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGTERM, os.Interrupt)

	go func() {
		for sig := range sigs {
			switch sig {
			case syscall.SIGUSR1:
				fmt.Fprintln(os.Stderr, "dumping stack traces due to SIGUSR1 request")
				pprof.Lookup("goroutine").WriteTo(os.Stderr, 1)
			default:
				drain()
				return
			}
		}
	}()
}
