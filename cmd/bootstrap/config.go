package bootstrap

import (
	"roombook/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
)

func loadConfig() (config.Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()
	return config.LoadConfig()
}
