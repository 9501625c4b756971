package models

import "time"

type EnvConfig struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	PollInterval time.Duration
	BulkStatus   bool

	MouflonKeysFile  string
	MouflonCacheFile string

	HTTPSProxy string
	HTTPProxy  string
	NoProxy    string

	CookiesFile string
	UserAgent   string

	ProfilerPort int
	LogLevel     string
}
