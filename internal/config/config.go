package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. The input and output base paths
// are the only parameters the pipelines themselves consume; storage
// credentials stay out-of-band in the environment.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	InputPath  string
	OutputPath string
}

// Load reads configuration from an optional lake.yml file, the environment
// (SOUNDLAKE_ prefix) and a .env file, in ascending precedence of env over
// file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("lake")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/soundlake")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SOUNDLAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "lakehouse")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("input.path", "data")
	v.SetDefault("output.path", "output")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		AppName:     v.GetString("app.name"),
		AppVersion:  v.GetString("app.version"),
		Environment: v.GetString("environment"),
		InputPath:   v.GetString("input.path"),
		OutputPath:  v.GetString("output.path"),
	}, nil
}
