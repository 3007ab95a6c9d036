package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	sourceOnce sync.Once
	source     *settings
)

// FileConfig mirrors the optional YAML file named by CONFIG_FILE. Secrets
// are only read from the environment.
type FileConfig struct {
	Server struct {
		Addr            string   `yaml:"addr"`
		ShutdownTimeout string   `yaml:"shutdownTimeout"`
		AllowedOrigins  []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Log struct {
		Level       string   `yaml:"level"`
		Encoding    string   `yaml:"encoding"`
		OutputPaths []string `yaml:"outputPaths"`
		Development *bool    `yaml:"development"`
	} `yaml:"log"`
	Cache struct {
		RedisAddr string `yaml:"redisAddr"`
		RedisDB   *int   `yaml:"redisDB"`
		TTL       string `yaml:"ttl"`
	} `yaml:"cache"`
	Textract struct {
		Enabled       *bool    `yaml:"enabled"`
		Region        string   `yaml:"region"`
		MinConfidence *float64 `yaml:"minConfidence"`
	} `yaml:"textract"`
}

// settings resolves a key from the environment first, then the YAML file.
type settings struct {
	file   FileConfig
	lookup func(string) (string, bool)
}

func newSettings(file FileConfig) *settings {
	return &settings{file: file, lookup: os.LookupEnv}
}

func getSettings() *settings {
	sourceOnce.Do(func() {
		// .env lives at the project root, next to go.mod
		_, filename, _, _ := runtime.Caller(0)
		rootDir := filepath.Dir(filepath.Dir(filename))
		envPath := filepath.Join(rootDir, ".env")

		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, falling back to environment variables", envPath)
		}

		var file FileConfig
		if path := os.Getenv("CONFIG_FILE"); path != "" {
			loaded, err := ReadFile(path)
			if err != nil {
				log.Printf("Warning: ignoring config file: %v", err)
			} else {
				file = *loaded
			}
		}
		source = newSettings(file)
	})
	return source
}

// ReadFile parses a YAML config file.
func ReadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (s *settings) env(key string) (string, bool) {
	v, ok := s.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *settings) String(key, fileValue, def string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return def
}

func (s *settings) List(key string, fileValue, def []string) []string {
	if v, ok := s.env(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if len(fileValue) > 0 {
		return fileValue
	}
	return def
}

func (s *settings) Int(key string, fileValue *int, def int) int {
	if v, ok := s.env(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	if fileValue != nil {
		return *fileValue
	}
	return def
}

func (s *settings) Float(key string, fileValue *float64, def float64) float64 {
	if v, ok := s.env(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
		log.Printf("Warning: invalid %s=%q, using default %g", key, v, def)
		return def
	}
	if fileValue != nil {
		return *fileValue
	}
	return def
}

func (s *settings) Bool(key string, fileValue *bool, def bool) bool {
	if v, ok := s.env(key); ok {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		log.Printf("Warning: invalid %s=%q, using default %t", key, v, def)
		return def
	}
	if fileValue != nil {
		return *fileValue
	}
	return def
}

func (s *settings) Duration(key, fileValue string, def time.Duration) time.Duration {
	raw := s.String(key, fileValue, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return d
}
