package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment   string
	ServerAddress string
	SecretKey     string
	AdminPassword string

	SnapshotBackend string
	RedisAddress    string
	RedisUsername   string
	RedisPassword   string
	DatabaseURL     string
	MigrationsPath  string

	MQTTBrokerURL string

	UploadDir       string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SnapshotBackend: os.Getenv("SNAPSHOT_BACKEND"),
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisUsername:   os.Getenv("REDIS_USERNAME"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		UploadDir:       os.Getenv("UPLOAD_DIR"),
		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.UploadDir == "" {
		env.UploadDir = "./uploads"
	}

	if env.SecretKey == "" || env.AdminPassword == "" {
		log.Fatal().Msg("Missing required environment variables")
	}

	return env
}
