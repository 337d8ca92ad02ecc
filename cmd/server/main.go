package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/config"
	"github.com/lumengrid/ledcast/internal/events"
	"github.com/lumengrid/ledcast/internal/http/middleware"
	"github.com/lumengrid/ledcast/internal/media"
	"github.com/lumengrid/ledcast/internal/sim"
	"github.com/lumengrid/ledcast/internal/state"
	"github.com/lumengrid/ledcast/internal/store"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	passwordHash, err := middleware.HashPassword(env.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not hash admin password")
	}

	snapshots := InitSnapshots(env)
	mediaStorage := InitStorage(env)

	var bus events.Publisher = events.Nop{}
	if env.MQTTBrokerURL != "" {
		publisher, err := events.NewMQTTPublisher(env.MQTTBrokerURL, "ledcast-server", "ledcast")
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to MQTT broker")
		}
		bus = publisher
		log.Info().Str("broker", env.MQTTBrokerURL).Msg("publishing events over MQTT")
	}

	ctl := state.New(state.DefaultConfig(), mediaStorage, bus)

	snap, err := snapshots.Load(context.Background())
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		log.Warn().Err(err).Msg("could not load persisted state, starting fresh")
	}
	ctl.Bootstrap(snap)

	pipeline := media.NewPipeline(mediaStorage, media.NewFFProbe(), media.NewThumbnailer())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver := sim.New(ctl, nil)
	driver.Start(ctx)

	go runTickers(ctx, ctl, snapshots)

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, passwordHash, ctl, pipeline, snapshots)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// runTickers drives the uptime counter and the periodic state autosave until
// the context is cancelled. A final save runs on shutdown.
func runTickers(ctx context.Context, ctl *state.Controller, snapshots store.SnapshotStore) {
	uptime := time.NewTicker(config.UptimeInterval)
	defer uptime.Stop()
	save := time.NewTicker(config.SaveInterval)
	defer save.Stop()

	for {
		select {
		case <-uptime.C:
			ctl.TickUptime()
		case <-save.C:
			saveSnapshot(ctx, ctl, snapshots)
		case <-ctx.Done():
			saveSnapshot(context.Background(), ctl, snapshots)
			return
		}
	}
}

func saveSnapshot(ctx context.Context, ctl *state.Controller, snapshots store.SnapshotStore) {
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := snapshots.Save(saveCtx, ctl.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("autosave failed")
	}
}
