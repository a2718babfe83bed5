package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"

	"github.com/ccollicutt/hostgrep/pkg/logger"
)

// AddQuitSignal adds an actor that returns on SIGINT or SIGTERM.
func AddQuitSignal(group *run.Group) {
	quit := make(chan struct{})
	group.Add(func() error {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(c)
		select {
		case sig := <-c:
			logger.GetInstance().Infof("received signal %s", sig)
			return nil
		case <-quit:
			return nil
		}
	}, func(error) {
		close(quit)
	})
}

// AddWatcher adds an actor running w until another actor returns.
func AddWatcher(ctx context.Context, group *run.Group, w *Watcher) {
	ctx, cancel := context.WithCancel(ctx)
	group.Add(func() error {
		return w.Run(ctx)
	}, func(error) {
		cancel()
	})
}
