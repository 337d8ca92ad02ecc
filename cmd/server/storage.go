package main

import (
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/storage"
	"github.com/lumengrid/ledcast/internal/store"
)

// InitStorage selects and returns the configured media storage backend
func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", env.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spacesStorage
	}

	local := storage.NewLocalStorage(env.UploadDir)
	log.Info().Str("dir", env.UploadDir).Msg("using local file storage")
	return local
}

// InitSnapshots selects the snapshot persistence backend. With nothing
// configured the state lives only in memory, which is fine for a demo run.
func InitSnapshots(env Environment) store.SnapshotStore {
	switch env.SnapshotBackend {
	case "redis":
		s, err := store.NewRedisStore(env.RedisAddress, env.RedisUsername, env.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize redis snapshot store")
		}
		log.Info().Str("address", env.RedisAddress).Msg("using redis snapshot store")
		return s
	case "postgres":
		s, err := store.NewPostgresStore(env.DatabaseURL, env.MigrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize postgres snapshot store")
		}
		log.Info().Msg("using postgres snapshot store")
		return s
	default:
		log.Info().Msg("no snapshot backend configured, state is in-memory only")
		return store.NewMemoryStore()
	}
}
