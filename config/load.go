package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	return App{
		Port:        getenv("APP_PORT", "9090"),
		GatewayPort: getenv("GATEWAY_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		ServerURL:   getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Env:         getenv("APP_ENV", "dev"),
	}
}

// LoadGateway skips the DB requirement; the gateway never touches the store.
func LoadGateway() App {
	_ = godotenv.Load()

	return App{
		GatewayPort: getenv("GATEWAY_PORT", "8080"),
		ServerURL:   getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Env:         getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
