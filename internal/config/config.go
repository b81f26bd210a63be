// internal/config/config.go
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Storage    struct {
		Driver      string `mapstructure:"driver"`
		DataDir     string `mapstructure:"data_dir"`
		SQLitePath  string `mapstructure:"sqlite_path"`
		PostgresDSN string `mapstructure:"postgres_dsn"`
		RedisAddr   string `mapstructure:"redis_addr"`
	} `mapstructure:"storage"`
	Predictor struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"predictor"`
	Seed struct {
		AdminName     string `mapstructure:"admin_name"`
		AdminEmail    string `mapstructure:"admin_email"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"seed"`
}

func Load() Config {
	viper.SetDefault("listen_addr", "127.0.0.1:8080")
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.data_dir", "./data")
	viper.SetDefault("predictor.url", "http://127.0.0.1:8000")
	viper.SetDefault("seed.admin_name", "Administrator")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = viper.BindEnv("storage.data_dir", "DATA_DIR")
	_ = viper.BindEnv("storage.sqlite_path", "SQLITE_PATH")
	_ = viper.BindEnv("storage.postgres_dsn", "POSTGRES_DSN")
	_ = viper.BindEnv("storage.redis_addr", "REDIS_ADDR")
	_ = viper.BindEnv("predictor.url", "PREDICTOR_URL")
	_ = viper.BindEnv("seed.admin_name", "SEED_ADMIN_NAME")
	_ = viper.BindEnv("seed.admin_email", "SEED_ADMIN_EMAIL")
	_ = viper.BindEnv("seed.admin_password", "SEED_ADMIN_PASSWORD")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	return c
}
