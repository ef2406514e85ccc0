//go:build linux

package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProcFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func pidStat(comm string, utime, stime int) string {
	return "1 (" + comm + ") S 0 1 1 0 -1 0 0 0 0 0 " +
		strconv.Itoa(utime) + " " + strconv.Itoa(stime) + " 0 0 20 0 1 0 1 1 1"
}

func TestProcfs_ProcessesDelta(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "10/stat", pidStat("busy", 100, 0))
	writeProcFile(t, root, "11/stat", pidStat("idle", 5, 5))

	logger, _ := test.NewNullLogger()
	p := NewProcfs(root, logger)
	clock := time.Unix(1000, 0)
	p.now = func() time.Time { return clock }

	first, err := p.Processes(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, s := range first {
		require.NotNil(t, s.CPUPercent)
		assert.Equal(t, 0.0, *s.CPUPercent, "first observation of pid %d", s.PID)
	}

	// busy burns 50 ticks (0.5s of CPU) during one wall second.
	writeProcFile(t, root, "10/stat", pidStat("busy", 150, 0))
	clock = clock.Add(time.Second)

	second, err := p.Processes(context.Background())
	require.NoError(t, err)
	byPID := map[int32]float64{}
	for _, s := range second {
		require.NotNil(t, s.CPUPercent)
		byPID[s.PID] = *s.CPUPercent
	}
	assert.InDelta(t, 50.0, byPID[10], 0.0001)
	assert.Equal(t, 0.0, byPID[11])
}

func TestProcfs_PIDReuseIsAbsent(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "20/stat", pidStat("old", 500, 0))

	p := NewProcfs(root, logrus.New())
	clock := time.Unix(1000, 0)
	p.now = func() time.Time { return clock }

	_, err := p.Processes(context.Background())
	require.NoError(t, err)

	writeProcFile(t, root, "20/stat", pidStat("new", 3, 0))
	clock = clock.Add(time.Second)

	got, err := p.Processes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
	assert.Nil(t, got[0].CPUPercent)
}

func TestProcfs_Memory(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "meminfo", "MemTotal: 2048 kB\nMemFree: 512 kB\nMemAvailable: 1024 kB\n")

	st, err := NewProcfs(root, logrus.New()).Memory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2048*1024), st.Total)
	assert.InDelta(t, 50.0, st.Percent, 0.0001)
}

func TestProcfs_CPUHonoursContext(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "stat", "cpu  1 0 1 1 0 0 0 0\ncpu0 1 0 1 1 0 0 0 0\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProcfs(root, logrus.New()).CPU(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcfs_CPUStaticCountersAreIdle(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "stat", "cpu  1 0 1 1 0 0 0 0\ncpu0 1 0 1 1 0 0 0 0\ncpu1 1 0 1 1 0 0 0 0\n")

	st, err := NewProcfs(root, logrus.New()).CPU(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, st.CoreCount)
	assert.Equal(t, []float64{0, 0}, st.PerCore)
	assert.Equal(t, 0.0, st.OverallPercent)
}

func TestNewProcfs_MissingRoot(t *testing.T) {
	_, err := newProcfs(filepath.Join(t.TempDir(), "nope"), logrus.New())
	assert.Error(t, err)
}
