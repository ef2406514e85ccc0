package metrics

import (
	"context"
	"os"
	"testing"

	"github.com/ftahirops/hostdash/model"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Above any kernel pid_max, so it is never listed.
const stalePID = int32(1 << 30)

func findPID(samples []model.ProcessSample, pid int32) (model.ProcessSample, bool) {
	for _, s := range samples {
		if s.PID == pid {
			return s, true
		}
	}
	return model.ProcessSample{}, false
}

func TestHost_ProcessesReusesHandles(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewHost(logger)
	self := int32(os.Getpid())
	ctx := context.Background()

	first, err := h.Processes(ctx)
	require.NoError(t, err)
	s, ok := findPID(first, self)
	require.True(t, ok, "own pid listed")
	require.NotNil(t, s.CPUPercent)
	assert.Equal(t, 0.0, *s.CPUPercent, "first sighting only primes the handle")

	h.mu.Lock()
	handle := h.procs[self]
	h.procs[stalePID] = &process.Process{Pid: stalePID}
	h.mu.Unlock()
	require.NotNil(t, handle)

	second, err := h.Processes(ctx)
	require.NoError(t, err)
	s, ok = findPID(second, self)
	require.True(t, ok)
	require.NotNil(t, s.CPUPercent)
	assert.GreaterOrEqual(t, *s.CPUPercent, 0.0)
	_, ok = findPID(second, stalePID)
	assert.False(t, ok)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Same(t, handle, h.procs[self], "known pid keeps its handle")
	assert.NotContains(t, h.procs, stalePID, "exited pid dropped")
}
