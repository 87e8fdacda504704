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
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelType(t *testing.T) {
	cases := map[string]ModelType{
		"OpenAI":    ModelTypeOpenAI,
		"gpt":       ModelTypeOpenAI,
		"anthropic": ModelTypeClaude,
		"doubao":    ModelTypeARK,
		"qwen":      ModelTypeDashScope,
		"deepseek":  ModelTypeDeepSeek,
		"ollama":    ModelTypeOllama,
		"llamafile": ModelTypeUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, NewModelType(in), in)
	}
}

func TestNewChatModel(t *testing.T) {
	_, err := NewChatModel(context.Background(), ModelConfig{APIType: ModelTypeUnknown})
	assert.ErrorContains(t, err, "unsupported model type")

	m, err := NewChatModel(context.Background(), ModelConfig{APIType: ModelTypeOpenAI, APIKey: "sk-test", ModelName: "gpt-4o"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMessageModifier(t *testing.T) {
	mod := newMessageModifier("sys", "test", 3)

	out := mod(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Len(t, out, 2)
	assert.Equal(t, schema.System, out[0].Role)
	assert.Equal(t, "sys", out[0].Content)

	out = mod(context.Background(), []*schema.Message{schema.UserMessage("a"), schema.AssistantMessage("b", nil)})
	require.Len(t, out, 4)
	assert.Equal(t, MaxStepsNotice, out[3].Content)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("dial tcp: connection refused")))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(errors.New("401 unauthorized")))
	assert.False(t, IsRetryable(nil))
}

func TestMakeAgentRequiresModel(t *testing.T) {
	_, err := MakeAgent(context.Background(), "x", nil, nil, AgentConfig{})
	assert.Error(t, err)
}
