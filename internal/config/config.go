package config

import (
	"errors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Address        string        `yaml:"address" env:"COOLER_ADDRESS" env-default:":5000"`
	Env            string        `yaml:"env" env:"COOLER_ENV" env-default:"development"`
	DBPath         string        `yaml:"db_path" env:"COOLER_DB_PATH" env-default:"cooler.db"`
	JWTSecret      string        `yaml:"jwt_secret" env:"COOLER_JWT_SECRET" env-required:"true"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"COOLER_TOKEN_TTL" env-default:"168h"`
	TrustedOrigins []string      `yaml:"trusted_origins" env:"COOLER_TRUSTED_ORIGINS" env-default:"http://localhost:3000"`
}

// Load reads the configuration from configPath, falling back to plain
// environment variables when the path is empty or the file is missing.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, err
	}

	return cfg, nil
}
