package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

// LoadEnv loads the env file for the given environment (dev, production, ...)
// into the process environment. A missing file is not an error; deployed
// processes get their configuration from the real environment.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
