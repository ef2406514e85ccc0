package ui

import (
	"io"
	"os"
	"time"

	"github.com/ftahirops/hostdash/metrics"
	"github.com/sirupsen/logrus"
)

// Defaults for PageDeps fields left empty.
const (
	DefaultFile           = "./projecttwo.txt"
	DefaultMount          = "/"
	DefaultSampleInterval = 100 * time.Millisecond
)

// PageDeps carries what the standard pages read from.
type PageDeps struct {
	Provider       metrics.Provider
	SampleInterval time.Duration
	Mount          string
	File           string
	Log            logrus.FieldLogger
	Now            func() time.Time
}

func (d PageDeps) withDefaults() PageDeps {
	if d.SampleInterval <= 0 {
		d.SampleInterval = DefaultSampleInterval
	}
	if d.Mount == "" {
		d.Mount = DefaultMount
	}
	if d.File == "" {
		d.File = DefaultFile
	}
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Log = l
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// DefaultPages builds the five dashboard pages in key order.
func DefaultPages(d PageDeps) []Page {
	d = d.withDefaults()
	return []Page{
		&CPUPage{provider: d.Provider, interval: d.SampleInterval, log: d.Log.WithField("page", "cpu")},
		&MemoryPage{provider: d.Provider, log: d.Log.WithField("page", "memory")},
		&DiskPage{provider: d.Provider, file: d.File, mount: d.Mount, stat: os.Stat, now: d.Now, log: d.Log.WithField("page", "disk")},
		&ThreadingPage{},
		&ErrorPage{now: d.Now},
	}
}
