package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by ResolveRoot and ResolveDevices
const (
	EnvRoot    = "CONFLICTSWEEP_ROOT"
	EnvDevices = "CONFLICTSWEEP_DEVICES"
)

// SyncClientEnv lists the variables the sync client itself exports for its
// root folder, in lookup order
var SyncClientEnv = []string{"OneDrive", "OneDriveConsumer", "OneDriveCommercial"}

// ErrRootNotConfigured is returned when no source provides a root directory
var ErrRootNotConfigured = errors.New("sync root directory is not configured")

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding the existing environment. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ResolveRoot picks the sync root: the flag value, then CONFLICTSWEEP_ROOT,
// then the config file, then the sync client's own variables.
func ResolveRoot(flagValue string, cfg *Config) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvRoot)); v != "" {
		return v, nil
	}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.Root); v != "" {
			return v, nil
		}
	}
	for _, name := range SyncClientEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: use --root, %s or the config file", ErrRootNotConfigured, EnvRoot)
}

// ResolveDevices picks the raw device list with the same precedence as
// ResolveRoot and splits it
func ResolveDevices(flagValue string, cfg *Config) []string {
	if strings.TrimSpace(flagValue) != "" {
		return ParseDeviceList(flagValue)
	}
	if v, ok := os.LookupEnv(EnvDevices); ok && strings.TrimSpace(v) != "" {
		return ParseDeviceList(v)
	}
	if cfg != nil {
		return ParseDeviceList(cfg.Devices)
	}
	return nil
}

// ParseDeviceList splits a comma separated list, trimming entries and
// dropping empty ones. Order and duplicates are kept.
func ParseDeviceList(raw string) []string {
	var devices []string
	for _, part := range strings.Split(raw, ",") {
		if d := strings.TrimSpace(part); d != "" {
			devices = append(devices, d)
		}
	}
	return devices
}
