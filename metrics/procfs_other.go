//go:build !linux

package metrics

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

func newProcfs(root string, log logrus.FieldLogger) (Provider, error) {
	return nil, fmt.Errorf("procfs provider is not available on %s", runtime.GOOS)
}
