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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestParseAndNormalize(t *testing.T) {
	cfg, err := Parse([]byte(`
models:
  text:
    type: openai
    name: gpt-4o
    api_key: sk-1
    timeout: 30s
  image:
    name: gpt-image-1
content:
  placeholder_fallback: true
platforms:
  default: tiktok
  extra:
    tiktok:
      width: 1080
      height: 1920
    square_small:
      width: 512
      height: 512
`))
	require.NoError(t, err)
	Normalize(&cfg)
	require.NoError(t, Validate(&cfg))

	assert.Equal(t, BackendLocal, cfg.Storage.Backend)
	assert.Equal(t, DefaultOutputDir, cfg.Storage.OutputDir)
	assert.Equal(t, 3, cfg.Content.Retries)
	assert.Equal(t, DefaultMaxSteps, cfg.Assistant.MaxSteps)
	assert.True(t, cfg.Content.PlaceholderFallback)

	// connection settings are inherited, the model name is not
	assert.Equal(t, "openai", cfg.Models.Image.Type)
	assert.Equal(t, "sk-1", cfg.Models.Image.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Models.Image.Timeout)
	assert.Equal(t, "", cfg.Models.Vision.Name)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, "tiktok", table.DefaultKey())
	size, ok := table.Lookup("tiktok")
	require.True(t, ok)
	assert.Equal(t, "1080x1920", size.String())
	size, ok = table.Lookup("square_small")
	require.True(t, ok)
	assert.Equal(t, "512x512", size.String())
	require.NoError(t, cfg.RequireModels())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("storage:\n  bakend: mcp\n"))
	assert.Error(t, err)

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Config{Models: Models{Text: Model{Type: "ollama", Name: "llama3"}}}
	ApplyEnv(&cfg, env(map[string]string{
		"API_TYPE":             "claude",
		"API_KEY":              "key",
		"MODEL_NAME":           "claude-sonnet",
		"VISION_MODEL_NAME":    "claude-vision",
		"ASSETGEN_STORAGE":     "MCP",
		"ASSETGEN_MCP_COMMAND": "assetgen mcp -mock",
		"ASSETGEN_OUTPUT_DIR":  "/tmp/out",
	}))
	Normalize(&cfg)
	require.NoError(t, Validate(&cfg))

	assert.Equal(t, "claude", cfg.Models.Text.Type)
	assert.Equal(t, "claude-sonnet", cfg.Models.Text.Name)
	assert.Equal(t, "claude-vision", cfg.Models.Vision.Name)
	assert.Equal(t, "key", cfg.Models.Vision.APIKey)
	assert.Equal(t, BackendMCP, cfg.Storage.Backend)
	assert.Equal(t, "assetgen", cfg.Storage.MCP.Command)
	assert.Equal(t, []string{"mcp", "-mock"}, cfg.Storage.MCP.Args)
	assert.Equal(t, "/tmp/out", cfg.Storage.OutputDir)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown backend", Config{Storage: Storage{Backend: "s3"}}, `unsupported "s3"`},
		{"mcp without server", Config{Storage: Storage{Backend: BackendMCP}}, "command or sse_url"},
		{"unknown model type", Config{Models: Models{Text: Model{Type: "llamafile"}}}, "models.text.type"},
		{"bad platform", Config{Platforms: Platforms{Extra: map[string]platform.Size{"x": {Width: 0, Height: 10}}}}, "platforms"},
		{"unknown default", Config{Platforms: Platforms{Default: "tiktok"}}, "default platform tiktok is not defined"},
		{"negative retries", Config{Content: Content{Retries: -1}}, "content.retries"},
		{"empty assistant server", Config{Assistant: Assistant{MCPServers: []MCPServer{{}}}}, "assistant.mcp_servers[0]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := c.cfg
			Normalize(&cfg)
			err := Validate(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestRequireModels(t *testing.T) {
	assert.ErrorContains(t, Config{}.RequireModels(), "API_TYPE")
	assert.ErrorContains(t, Config{Models: Models{Text: Model{Type: "openai"}}}.RequireModels(), "MODEL_NAME")
	assert.ErrorContains(t, Config{Models: Models{Text: Model{Type: "openai", Name: "m"}}}.RequireModels(), "API_KEY")
	assert.NoError(t, Config{Models: Models{Text: Model{Type: "ollama", Name: "m"}}}.RequireModels())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  output_dir: out\n  watch: true\n"), 0o644))
	t.Setenv("ASSETGEN_OUTPUT_DIR", "")
	t.Setenv("ASSETGEN_STORAGE", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Storage.OutputDir)
	assert.True(t, cfg.Storage.Watch)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
