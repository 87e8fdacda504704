/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atcmedia/assetgen/llm/prompt"
	"github.com/cloudwego/eino/components/model"
	etool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
)

type ModelConfig struct {
	Name        string        `json:"name"` // alias of the config, not endpoint!
	APIType     ModelType     `json:"type"`
	BaseURL     string        `json:"base_url"`
	APIKey      string        `json:"api_key"`
	ModelName   string        `json:"model_name"` // the endpoint of the model, like `gpt-image-1`
	Temperature *float32      `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"` // HTTP request timeout, default: 600s
}

type ModelType string

func NewModelType(t string) ModelType {
	switch strings.ToLower(t) {
	case "ollama":
		return ModelTypeOllama
	case "ark", "doubao":
		return ModelTypeARK
	case "openai", "gpt":
		return ModelTypeOpenAI
	case "claude", "anthropic":
		return ModelTypeClaude
	case "dashscope", "qwen", "tongyi":
		return ModelTypeDashScope
	case "deepseek":
		return ModelTypeDeepSeek
	}
	return ModelTypeUnknown
}

const (
	ModelTypeUnknown   ModelType = ""
	ModelTypeOllama    ModelType = "ollama"
	ModelTypeARK       ModelType = "ark"
	ModelTypeOpenAI    ModelType = "openai"
	ModelTypeClaude    ModelType = "claude"
	ModelTypeDashScope ModelType = "dashscope"
	ModelTypeDeepSeek  ModelType = "deepseek"
)

type AgentConfig struct {
	MaxSteps int           `json:"max_steps"`
	Retries  int           `json:"retries"`
	Timeout  time.Duration `json:"timeout"`
	Prompt   prompt.Prompt `json:"prompt"`
}

// Generator is the interface for calling
type Generator interface {
	// Call calls the LLM with the input.
	Call(ctx context.Context, input string) (string, error)
}

// ChatModel is the interface for making LLM backend.
type ChatModel interface {
	model.ToolCallingChatModel
}

// MakeAgent builds a tool-calling agent over the given tools.
func MakeAgent(ctx context.Context, name string, chat ChatModel, tools []etool.BaseTool, cfg AgentConfig) (Generator, error) {
	if chat == nil {
		return nil, errors.New("agent model must be set")
	}
	if cfg.Prompt == nil {
		cfg.Prompt = prompt.NewTextPrompt(prompt.PromptAssistant)
	}
	return NewReactAgent(ctx, name, ReactAgentOptions{
		SysPrompt: cfg.Prompt,
		AgentConfig: &react.AgentConfig{
			ToolCallingModel: chat,
			ToolsConfig:      compose.ToolsNodeConfig{Tools: tools},
			MaxStep:          cfg.MaxSteps,
		},
		Retries: cfg.Retries,
		Timeout: cfg.Timeout,
	})
}
