package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"camwatch/config"
	"camwatch/database"
	"camwatch/ext/stripchat"
	"camwatch/logger"
	"camwatch/monitor"
	"camwatch/mouflon"

	"net/http"
	_ "net/http/pprof" // profiling

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Sync()

	// load environment variables and configurations
	config.Load()
	logger.SetLevel(config.Env.LogLevel)

	// setup pprof profiler
	if config.Env.ProfilerPort > 0 {
		go func() {
			zap.S().Infof("starting profiler on port %d", config.Env.ProfilerPort)
			if err := http.ListenAndServe(fmt.Sprintf(":%d", config.Env.ProfilerPort), nil); err != nil {
				zap.S().Fatalf("failed to start profiler: %v", err)
			}
		}()
	}

	// setup database
	database.Start()

	store := mouflon.NewKeyStore(
		config.Env.MouflonKeysFile,
		config.Env.MouflonCacheFile,
	)
	store.Load()
	zap.S().Debugf("key store loaded with %d entries", store.Len())

	engine := mouflon.NewEngine(store)
	client := stripchat.NewClient(engine)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	zap.S().Infof("polling every %s", config.Env.PollInterval)
	monitor.New(client).Run(ctx)
}
