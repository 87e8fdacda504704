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
	"strings"
	"time"

	"github.com/atcmedia/assetgen/internal/platform"
)

const (
	DefaultOutputDir = "generated"
	DefaultMaxSteps  = 20
)

// Normalize fills defaults in place.
func Normalize(cfg *Config) {
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendLocal
	}
	if cfg.Storage.OutputDir == "" {
		cfg.Storage.OutputDir = DefaultOutputDir
	}
	if cfg.Platforms.Default == "" {
		cfg.Platforms.Default = platform.DefaultKey
	}
	if cfg.Content.Retries == 0 {
		cfg.Content.Retries = 3
	}
	if cfg.Content.Timeout == 0 {
		cfg.Content.Timeout = 600 * time.Second
	}
	if cfg.Assistant.MaxSteps == 0 {
		cfg.Assistant.MaxSteps = DefaultMaxSteps
	}
	inherit(&cfg.Models.Vision, cfg.Models.Text)
	inherit(&cfg.Models.Image, cfg.Models.Text)
}

// inherit copies connection settings; the model name is never inherited for
// the image model, which needs a dedicated endpoint.
func inherit(m *Model, from Model) {
	if m.Type == "" {
		m.Type = from.Type
	}
	if m.BaseURL == "" {
		m.BaseURL = from.BaseURL
	}
	if m.APIKey == "" {
		m.APIKey = from.APIKey
	}
	if m.Timeout == 0 {
		m.Timeout = from.Timeout
	}
}
