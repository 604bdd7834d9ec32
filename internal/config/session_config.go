package config

import (
	"os"
	"path/filepath"
)

type SessionBackend string

const (
	SessionBackendMemory SessionBackend = "memory"
	SessionBackendFile   SessionBackend = "file"
	SessionBackendRedis  SessionBackend = "redis"
)

const (
	sessionBackendVar = "SESSION_BACKEND"
	sessionFileVar    = "SESSION_FILE"
	redisAddrVar      = "REDIS_ADDR"
	redisPasswordVar  = "REDIS_PASSWORD"
	redisKeyVar       = "REDIS_SESSION_KEY"
)

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionBackend() SessionBackend {
	switch backend := SessionBackend(GetEnv(sessionBackendVar, string(SessionBackendFile))); backend {
	case SessionBackendMemory, SessionBackendFile, SessionBackendRedis:
		return backend
	default:
		return SessionBackendFile
	}
}

func (Session) GetSessionFile() string {
	if path := os.Getenv(sessionFileVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".appeals", "session.json")
	}
	return filepath.Join(home, ".appeals", "session.json")
}

func (Session) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, "")
}

// GetRedisKey names the hash holding the session fields
func (Session) GetRedisKey() string {
	return GetEnv(redisKeyVar, "appeals:session")
}
