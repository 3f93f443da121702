package signalman

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainRunsHooks(t *testing.T) {
	fired := false

	Register("stopper", func() error {
		fired = true
		return nil
	})

	// a failing hook must not block the rest of the drain
	Register("failer", func() error {
		return errors.New("stop failed")
	})

	drain()

	assert.True(t, fired)

	// Wait returns immediately once drained
	Wait()
}
