// Copyright (c) 2026 The NoticePay developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config handles configuration for hosts embedding the NoticePay
// reward-escrow engine. Configuration lives in a plain "key = value" file
// under the data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the engine host configuration.
type Config struct {
	DataDir    string // state directory (board snapshots, bolt db)
	Network    string // "mainnet", "testnet", or "regtest"
	LogLevel   string // "debug", "info", "warn", or "error"
	LogFile    string // optional log file path; empty = stderr
	SystemAddr string // hex address allowed to bootstrap the board
	TokenRef   string // default reward token reference
}

// DefaultDataDir returns the default data directory, {home}/.noticepay.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".noticepay"
	}
	return filepath.Join(home, ".noticepay")
}

// DefaultConfig returns a config with default values. SystemAddr has no
// sensible default and must be set before the config validates.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Network:  "mainnet",
		LogLevel: "info",
		TokenRef: "NPAY",
	}
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file, starting from defaults for unset keys.
// Unknown keys are ignored so newer files load under older code.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		case "systemaddr":
			cfg.SystemAddr = value
		case "tokenref":
			cfg.TokenRef = value
		default:
			// Unknown keys are ignored for forward compatibility.
		}
	}

	return cfg, nil
}

// SaveConfig writes the config file, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# NoticePay Configuration\n\n")
	fmt.Fprintf(&sb, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&sb, "network = %s\n", cfg.Network)
	fmt.Fprintf(&sb, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&sb, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&sb, "systemaddr = %s\n", cfg.SystemAddr)
	fmt.Fprintf(&sb, "tokenref = %s\n", cfg.TokenRef)

	return os.WriteFile(path, []byte(sb.String()), 0600)
}
