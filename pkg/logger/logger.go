package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init builds the process logger. A development environment gets the
// human-readable console encoder, everything else JSON.
func Init(env string) *zap.Logger {
	once.Do(func() {
		var err error
		if env == "development" {
			instance, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.OutputPaths = []string{"stdout"}
			instance, err = cfg.Build()
		}
		if err != nil {
			panic(err)
		}
	})
	return instance
}

// Get returns the process logger, initializing a production one if Init was
// never called.
func Get() *zap.Logger {
	if instance == nil {
		return Init("")
	}
	return instance
}
