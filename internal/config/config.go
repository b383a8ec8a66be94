//
// Copyright (c) 2026 pinsuki contributors <https://github.com/pinsuki/pinsuki>
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of pinsuki.
//
// pinsuki is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// pinsuki is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// pinsuki.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the TOML configuration and owns the default
// filesystem locations (config file, cache directory).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pinsuki/pinsuki/internal/utils"
	"github.com/pinsuki/pinsuki/pkg/logging"
)

var log = logging.GetLogger("CONF")

const (
	EnvAuthToken = "PINSUKI_AUTH_TOKEN"

	DefaultAPIBase = "https://api.pinboard.in/v1/"
	DefaultTimeout = 30 * time.Second
)

// Duration wraps time.Duration so it can appear in the TOML file in the
// human form ("30s", "1m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	// Pinboard API token, `user:hexstring`. The PINSUKI_AUTH_TOKEN env
	// variable takes precedence over the file.
	AuthToken string `toml:"auth_token"`

	APIBase  string   `toml:"api_base"`
	CacheDir string   `toml:"cache_dir"`
	Timeout  Duration `toml:"timeout"`

	// Space requests to the remote to respect the API rate limit guidance.
	RequestPacing bool `toml:"request_pacing"`

	FuzzySearch   bool `toml:"fuzzy_search"`
	TagOnlySearch bool `toml:"tag_only_search"`
}

// Default returns the built-in configuration. The auth token is only read
// from the environment here; an empty token is allowed until a remote call
// is attempted.
func Default() *Config {
	return &Config{
		AuthToken:     os.Getenv(EnvAuthToken),
		APIBase:       DefaultAPIBase,
		CacheDir:      defaultCacheDir(),
		Timeout:       Duration{DefaultTimeout},
		RequestPacing: false,
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		// fall back to a dotdir in $PWD, same as no cache dir at all
		return ".pinsuki"
	}
	return filepath.Join(dir, ConfigDirName)
}

// EnsureCacheDir expands and creates the cache directory if needed and
// returns its absolute path. Creation and permission failures surface to
// the caller untouched.
func (c *Config) EnsureCacheDir() (string, error) {
	dir, err := utils.ExpandPath(c.CacheDir)
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("could not create cache dir: %w", err)
	}

	return dir, nil
}
