package testutil

import (
	"go.uber.org/zap"

	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// Logger returns a development zap-backed logger for use in tests.
// Panics on construction failure (should never happen in tests).
func Logger() utils.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("testutil.Logger: " + err.Error())
	}
	return utils.NewZapLogger(l)
}
