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

// Package config loads assetgen settings from a YAML file and the
// environment.
package config

import (
	"time"

	"github.com/atcmedia/assetgen/internal/platform"
)

type Config struct {
	Models    Models    `yaml:"models"`
	Content   Content   `yaml:"content"`
	Storage   Storage   `yaml:"storage"`
	Platforms Platforms `yaml:"platforms"`
	Assistant Assistant `yaml:"assistant"`
}

// Model selects one chat model endpoint.
type Model struct {
	Type        string        `yaml:"type"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Name        string        `yaml:"name"`
	Temperature *float32      `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Models are the text, vision and image endpoints. Vision and Image inherit
// unset connection fields from Text.
type Models struct {
	Text   Model `yaml:"text"`
	Vision Model `yaml:"vision"`
	Image  Model `yaml:"image"`
}

type Content struct {
	// Mock uses the offline content provider.
	Mock                bool          `yaml:"mock"`
	PlaceholderFallback bool          `yaml:"placeholder_fallback"`
	Retries             int           `yaml:"retries"`
	Timeout             time.Duration `yaml:"timeout"`
}

const (
	BackendLocal = "local"
	BackendMCP   = "mcp"
)

// MCPServer is an external tool server, reached over stdio or SSE.
type MCPServer struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Envs    []string `yaml:"envs"`
	SSEURL  string   `yaml:"sse_url"`
}

func (s MCPServer) Empty() bool {
	return s.Command == "" && s.SSEURL == ""
}

type Storage struct {
	Backend   string    `yaml:"backend"`
	OutputDir string    `yaml:"output_dir"`
	BrandsDir string    `yaml:"brands_dir"`
	Watch     bool      `yaml:"watch"`
	MCP       MCPServer `yaml:"mcp"`
}

type Platforms struct {
	Default string                   `yaml:"default"`
	Extra   map[string]platform.Size `yaml:"extra"`
}

type Assistant struct {
	MaxSteps   int         `yaml:"max_steps"`
	MCPServers []MCPServer `yaml:"mcp_servers"`
}

// Table builds the platform table the config describes.
func (c Config) Table() (*platform.Table, error) {
	return platform.NewTable(c.Platforms.Extra, c.Platforms.Default)
}
