package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type ClientConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRefreshPath() string
	GetLoginURL() string
	GetUseMockData() bool
}

type SessionConfig interface {
	GetSessionBackend() SessionBackend
	GetSessionFile() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisKey() string
}

type mainConfig struct {
	EnvVars
	Client
	Session
}

func New() Config {
	return mainConfig{}
}
