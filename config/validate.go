// Copyright (c) 2026 The NoticePay developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/noticepay/libnoticepay-go/token"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if _, err := token.AddressFromHex(cfg.SystemAddr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSystemAddr, err)
	}

	if cfg.TokenRef == "" {
		return ErrEmptyTokenRef
	}

	return nil
}

// SystemAddress parses the configured system address.
func (c Config) SystemAddress() (token.Address, error) {
	addr, err := token.AddressFromHex(c.SystemAddr)
	if err != nil {
		return token.Address{}, fmt.Errorf("%w: %w", ErrInvalidSystemAddr, err)
	}
	return addr, nil
}
