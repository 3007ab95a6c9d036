package config

import (
	"sync"
	"time"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig

	logOnce   sync.Once
	logConfig *LogConfig
)

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type LogConfig struct {
	Level       string
	Encoding    string
	OutputPaths []string
	Development bool
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		serverConfig = newServerConfig(getSettings())
	})
	return serverConfig
}

func GetLogConfig() *LogConfig {
	logOnce.Do(func() {
		logConfig = newLogConfig(getSettings())
	})
	return logConfig
}

func newServerConfig(s *settings) *ServerConfig {
	return &ServerConfig{
		Addr:            s.String("SERVER_ADDR", s.file.Server.Addr, ":8080"),
		ShutdownTimeout: s.Duration("SERVER_SHUTDOWN_TIMEOUT", s.file.Server.ShutdownTimeout, 5*time.Second),
		AllowedOrigins:  s.List("CORS_ALLOWED_ORIGINS", s.file.Server.AllowedOrigins, []string{"*"}),
	}
}

func newLogConfig(s *settings) *LogConfig {
	return &LogConfig{
		Level:       s.String("LOG_LEVEL", s.file.Log.Level, "info"),
		Encoding:    s.String("LOG_ENCODING", s.file.Log.Encoding, "json"),
		OutputPaths: s.List("LOG_OUTPUT_PATHS", s.file.Log.OutputPaths, []string{"stdout", "logs/app.log"}),
		Development: s.Bool("LOG_DEVELOPMENT", s.file.Log.Development, false),
	}
}
