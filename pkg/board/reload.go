package board

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/timetable"
)

// ReloadOnHangup drops the cached timetables whenever the process receives SIGHUP until ctx is done
func ReloadOnHangup(ctx context.Context, store *timetable.Store) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP)

	go func() {
		defer signal.Stop(signals)
		watchReload(ctx, store, signals)
	}()
}

func watchReload(ctx context.Context, store *timetable.Store, signals <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			store.ReloadAll()
			log.Info().Str("signal", sig.String()).Msg("Dropped cached timetables")
		}
	}
}
