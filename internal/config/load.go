// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, applies the environment, normalizes and validates a
// config file. An empty path starts from defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(&cfg, os.Getenv)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file settings with the environment variables the CLI
// documents.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Models.Text.Type, "API_TYPE")
	set(&cfg.Models.Text.APIKey, "API_KEY")
	set(&cfg.Models.Text.Name, "MODEL_NAME")
	set(&cfg.Models.Text.BaseURL, "BASE_URL")
	set(&cfg.Models.Vision.Name, "VISION_MODEL_NAME")
	set(&cfg.Models.Image.Name, "IMAGE_MODEL_NAME")
	set(&cfg.Storage.OutputDir, "ASSETGEN_OUTPUT_DIR")
	set(&cfg.Storage.BrandsDir, "ASSETGEN_BRANDS_DIR")
	set(&cfg.Storage.Backend, "ASSETGEN_STORAGE")
	if cmd := strings.Fields(getenv("ASSETGEN_MCP_COMMAND")); len(cmd) > 0 {
		cfg.Storage.MCP.Command = cmd[0]
		cfg.Storage.MCP.Args = cmd[1:]
	}
}
