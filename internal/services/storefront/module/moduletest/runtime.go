package moduletest

import (
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Runtime returns a module runtime backed by sessions and an observed
// logger.
func Runtime(sessions module.Sessions) (module.Runtime, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return module.Runtime{
		Sessions: sessions,
		Logger:   zap.New(core),
	}, logs
}
