package config

import (
	"os"
	"strconv"
	"time"

	"camwatch/models"

	"go.uber.org/zap"
)

var Env = GetDefaultConfig()

func LoadEnv() error {
	if value := os.Getenv("DB_HOST"); value != "" {
		Env.DBHost = value
	} else {
		zap.S().Warnf("DB_HOST is not set, using default %s", Env.DBHost)
	}
	if value := os.Getenv("DB_PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			Env.DBPort = port
		} else {
			zap.S().Fatal("DB_PORT env is not a valid integer")
		}
	}
	if value := os.Getenv("DB_NAME"); value != "" {
		Env.DBName = value
	}
	if value := os.Getenv("DB_USER"); value != "" {
		Env.DBUser = value
	}
	if value := os.Getenv("DB_PASSWORD"); value != "" {
		Env.DBPassword = value
	} else {
		zap.S().Fatalf("DB_PASSWORD env is not set")
	}
	if value := os.Getenv("POLL_INTERVAL"); value != "" {
		if interval, err := time.ParseDuration(value); err == nil {
			Env.PollInterval = interval
		} else {
			zap.S().Fatalf("POLL_INTERVAL env is not a valid duration: %v", err)
		}
	} else {
		zap.S().Warnf("POLL_INTERVAL is not set, using default %s", Env.PollInterval)
	}
	if value := os.Getenv("BULK_STATUS"); value != "" {
		if bulk, err := strconv.ParseBool(value); err == nil {
			Env.BulkStatus = bulk
		} else {
			zap.S().Fatal("BULK_STATUS env is not a valid boolean")
		}
	}
	if value := os.Getenv("MOUFLON_KEYS_FILE"); value != "" {
		Env.MouflonKeysFile = value
	}
	if value := os.Getenv("MOUFLON_CACHE_FILE"); value != "" {
		Env.MouflonCacheFile = value
	}
	if value := os.Getenv("COOKIES_FILE"); value != "" {
		Env.CookiesFile = value
	}
	if value := os.Getenv("USER_AGENT"); value != "" {
		Env.UserAgent = value
	}
	if value := os.Getenv("HTTP_PROXY"); value != "" {
		Env.HTTPProxy = value
	}
	if value := os.Getenv("HTTPS_PROXY"); value != "" {
		Env.HTTPSProxy = value
	}
	if value := os.Getenv("NO_PROXY"); value != "" {
		Env.NoProxy = value
	}
	if value := os.Getenv("PROFILER_PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			Env.ProfilerPort = port
		} else {
			zap.S().Fatal("PROFILER_PORT env is not a valid integer")
		}
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
	return nil
}

func GetDefaultConfig() *models.EnvConfig {
	return &models.EnvConfig{
		DBHost: "localhost",
		DBPort: 3306,
		DBName: "camwatch",
		DBUser: "camwatch",

		PollInterval: 2 * time.Minute,
		BulkStatus:   true,

		MouflonKeysFile:  "mouflon_keys.json",
		MouflonCacheFile: "stripchat_mouflon_keys.json",

		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
			" (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		LogLevel: "info",
	}
}
