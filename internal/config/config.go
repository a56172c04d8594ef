package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type MatchingConfig struct {
	ChunkSize    int    `yaml:"chunk_size"`
	Base         uint64 `yaml:"base"`
	Modulus      uint64 `yaml:"modulus"`
	BitsPerChunk int    `yaml:"bits_per_chunk"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: 20-byte chunks, base-256
// hashing under the stock large prime, 10 filter bits per chunk, info-level
// text logging.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			ChunkSize:    20,
			Base:         256,
			Modulus:      5003943032159437,
			BitsPerChunk: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged. Environment variables RKMATCH_CHUNK_SIZE and
// RKMATCH_MODULUS override the file.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Override with environment variables
	if v := os.Getenv("RKMATCH_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RKMATCH_CHUNK_SIZE: %w", err)
		}
		config.Matching.ChunkSize = n
	}
	if v := os.Getenv("RKMATCH_MODULUS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RKMATCH_MODULUS: %w", err)
		}
		config.Matching.Modulus = n
	}

	return config, nil
}
