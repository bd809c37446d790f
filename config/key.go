// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/stockparfait/errors"

	toml "github.com/pelletier/go-toml/v2"
)

// KeyEnv is the environment variable holding the BEA API key.
const KeyEnv = "BEA_API_KEY"

// KeyFile is the format of config.toml in the configuration directory.
type KeyFile struct {
	Key string `toml:"key"` // user ID issued by BEA
}

// readKeyFile returns the key from path, or "" if the file does not exist.
func readKeyFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Annotate(err, "failed to open config file %s", path)
	}
	defer f.Close()

	var c KeyFile
	if err := toml.NewDecoder(f).Decode(&c); err != nil {
		return "", errors.Annotate(err, "failed to read config file %s", path)
	}
	return c.Key, nil
}

// readDotEnv returns the key from a .env file without modifying the process
// environment, or "" if the file does not exist.
func readDotEnv(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Annotate(err, "cannot check %s for existence", path)
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return "", errors.Annotate(err, "failed to read %s", path)
	}
	return env[KeyEnv], nil
}

// LoadKey finds the API key in dir/config.toml, then dir/.env, then the
// environment, in that order.
func LoadKey(dir string) (string, error) {
	tomlPath := filepath.Join(dir, "config.toml")
	key, err := readKeyFile(tomlPath)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	envPath := filepath.Join(dir, ".env")
	if key, err = readDotEnv(envPath); err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	if key = os.Getenv(KeyEnv); key != "" {
		return key, nil
	}
	return "", errors.Reason(
		"no API key found.\nPlease create %s containing:\nkey = \"YourBEAUserID\"\n"+
			"or set %s in %s or in the environment",
		tomlPath, KeyEnv, envPath)
}
