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

	"github.com/atcmedia/assetgen/llm"
)

// Validate checks the structure of a normalized config. Model endpoints are
// checked by RequireModels, since only some actions need them.
func Validate(cfg *Config) error {
	var errs []error
	switch cfg.Storage.Backend {
	case BackendLocal:
	case BackendMCP:
		if cfg.Storage.MCP.Empty() {
			errs = append(errs, errors.New("storage.mcp: command or sse_url is required for the mcp backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unsupported %q", cfg.Storage.Backend))
	}
	if _, err := cfg.Table(); err != nil {
		errs = append(errs, fmt.Errorf("platforms: %w", err))
	}
	for name, m := range map[string]Model{"text": cfg.Models.Text, "vision": cfg.Models.Vision, "image": cfg.Models.Image} {
		if m.Type != "" && llm.NewModelType(m.Type) == llm.ModelTypeUnknown {
			errs = append(errs, fmt.Errorf("models.%s.type: unsupported %q", name, m.Type))
		}
	}
	if cfg.Content.Retries < 0 {
		errs = append(errs, errors.New("content.retries must not be negative"))
	}
	if cfg.Assistant.MaxSteps < 0 {
		errs = append(errs, errors.New("assistant.max_steps must not be negative"))
	}
	for i, s := range cfg.Assistant.MCPServers {
		if s.Empty() {
			errs = append(errs, fmt.Errorf("assistant.mcp_servers[%d]: command or sse_url is required", i))
		}
	}
	return errors.Join(errs...)
}

// RequireModels checks that a text model is configured.
func (c Config) RequireModels() error {
	if c.Models.Text.Type == "" {
		return errors.New("env API_TYPE (or models.text.type) is required")
	}
	if c.Models.Text.Name == "" {
		return errors.New("env MODEL_NAME (or models.text.name) is required")
	}
	if c.Models.Text.APIKey == "" && llm.NewModelType(c.Models.Text.Type) != llm.ModelTypeOllama {
		return errors.New("env API_KEY (or models.text.api_key) is required")
	}
	return nil
}
