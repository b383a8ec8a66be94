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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pinsuki/pinsuki/internal/utils"
)

const (
	ConfigFileName = "config.toml"
	ConfigDirName  = "pinsuki"
)

func getConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get config dir: %w", err)
	}
	if configDir == "" {
		return "", errors.New("could not get config dir")
	}

	return filepath.Join(configDir, ConfigDirName), nil
}

// ConfigFile returns the default config file path.
func ConfigFile() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the TOML config at path, using the default location when path
// is empty. A missing file is not an error: the defaults apply and the auth
// token may still come from the environment. Unset fields fall back to
// their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = ConfigFile(); err != nil {
			return nil, err
		}
	}

	exists, err := utils.CheckFileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Debugf("no config file at %s, using defaults", path)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// env token always wins
	if tok := os.Getenv(EnvAuthToken); tok != "" {
		cfg.AuthToken = tok
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
	if cfg.Timeout.Duration == 0 {
		cfg.Timeout = Duration{DefaultTimeout}
	}

	return cfg, nil
}

// InitConfigFile writes the current defaults to the default config file
// location, creating the directory if needed. Refuses to clobber an
// existing file.
func InitConfigFile() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config dir: %w", err)
	}

	path := filepath.Join(configDir, ConfigFileName)
	if exists, err := utils.CheckFileExists(path); err != nil {
		return "", err
	} else if exists {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(Default()); err != nil {
		return "", err
	}

	return path, nil
}
