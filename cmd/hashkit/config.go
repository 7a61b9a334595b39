package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/hupe1980/hashkit"
)

// envPrefix is the prefix of every environment variable, e.g. HASHKIT_STORE.
const envPrefix = "HASHKIT"

// Config is the CLI configuration. Flags override values from the environment.
type Config struct {
	Store    string `envconfig:"STORE" default:"local"`
	Root     string `envconfig:"ROOT" default:"."`
	Bucket   string `envconfig:"BUCKET"`
	Prefix   string `envconfig:"PREFIX"`
	Region   string `envconfig:"REGION"`
	Endpoint string `envconfig:"ENDPOINT"`

	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioSecure    bool   `envconfig:"MINIO_SECURE" default:"true"`

	Algorithm   string `envconfig:"ALGORITHM" default:"xxh64"`
	Seed        uint64 `envconfig:"SEED"`
	ChunkSize   int64  `envconfig:"CHUNK_SIZE" default:"1048576"`
	Concurrency int    `envconfig:"CONCURRENCY"`
	IOLimit     int64  `envconfig:"IO_LIMIT"`
	Decompress  bool   `envconfig:"DECOMPRESS"`

	LedgerTable string `envconfig:"LEDGER_TABLE"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// loadConfig reads an optional .env file and then the HASHKIT_* environment.
// Variables already set in the environment win over the .env file.
func loadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) algorithm() (hashkit.Algorithm, error) {
	return hashkit.ParseAlgorithm(c.Algorithm)
}

func (c Config) logger(w io.Writer) (*hashkit.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return hashkit.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return hashkit.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}
