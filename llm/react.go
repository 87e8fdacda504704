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
	"fmt"
	"strings"
	"time"

	"github.com/atcmedia/assetgen/internal/log"
	"github.com/atcmedia/assetgen/internal/utils"
	"github.com/atcmedia/assetgen/llm/prompt"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

// MaxStepsNotice is appended when an agent is about to run out of steps.
const MaxStepsNotice = "The maximum number of iterations has been reached. Give your conclusion now and do not call any more tools."

var _ Generator = (*ReactAgent)(nil)

type ReactAgent struct {
	opts ReactAgentOptions
	*react.Agent
	retries int
	timeout time.Duration
}

type ReactAgentOptions struct {
	SysPrompt prompt.Prompt `json:"-"`
	*react.AgentConfig
	Retries int           `json:"retries"` // default: 3
	Timeout time.Duration `json:"timeout"` // per attempt, default: 600s
}

func NewReactAgent(ctx context.Context, name string, opts ReactAgentOptions) (*ReactAgent, error) {
	if opts.SysPrompt == nil {
		opts.SysPrompt = prompt.NewTextPrompt("")
	}
	if opts.AgentConfig.MessageModifier == nil {
		opts.AgentConfig.MessageModifier = newMessageModifier(opts.SysPrompt.String(), name, opts.AgentConfig.MaxStep)
	}
	ra, err := react.NewAgent(ctx, opts.AgentConfig)
	if err != nil {
		return nil, utils.WrapError(err, "create react agent")
	}
	retries := opts.Retries
	if retries == 0 {
		retries = 3
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	return &ReactAgent{
		opts:    opts,
		Agent:   ra,
		retries: retries,
		timeout: timeout,
	}, nil
}

func newMessageModifier(sysPrompt string, name string, limit int) func(ctx context.Context, input []*schema.Message) []*schema.Message {
	return func(ctx context.Context, input []*schema.Message) []*schema.Message {
		log.Debug("message modifier, name: %v, limit: %d, input: %v", name, limit, len(input))
		if limit > 0 && len(input) >= limit-1 {
			input = append(input, schema.UserMessage(MaxStepsNotice))
		}
		return appendSysPrompt(sysPrompt, input)
	}
}

func appendSysPrompt(sysPrompt string, input []*schema.Message) []*schema.Message {
	res := make([]*schema.Message, 0, len(input)+1)
	res = append(res, schema.SystemMessage(sysPrompt))
	res = append(res, input...)
	return res
}

func (p *ReactAgent) Call(ctx context.Context, input string) (string, error) {
	log.Debug("[User] %s", input)
	inputMsgs := []*schema.Message{schema.UserMessage(input)}

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			log.Info("Retrying LLM call (attempt %d/%d)...", attempt+1, p.retries+1)
			// exponential backoff capped at 10s
			wait := time.Duration(1<<uint(attempt-1)) * time.Second
			if wait > 10*time.Second {
				wait = 10 * time.Second
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		out, err := p.Generate(attemptCtx, inputMsgs, agent.WithComposeOptions(compose.WithCallbacks(CallbackHandler{})))
		cancel()
		if err == nil {
			return out.Content, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			log.Error("Non-retryable error occurred: %v", err)
			return "", utils.WrapError(err, "ReactAgent RoundTrip error")
		}
		log.Info("Retryable error occurred (attempt %d/%d): %v", attempt+1, p.retries+1, err)
	}

	return "", utils.WrapError(fmt.Errorf("failed after %d retries: %w", p.retries+1, lastErr), "ReactAgent RoundTrip error")
}

// IsRetryable reports transient transport failures: timeouts and broken
// connections.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	for _, k := range []string{
		"timeout",
		"connection reset",
		"connection refused",
		"operation timed out",
		"context deadline exceeded",
		"read tcp",
		"write tcp",
	} {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// CallbackHandler traces agent graph nodes at debug level.
type CallbackHandler struct{}

var _ callbacks.Handler = (*CallbackHandler)(nil)

func (h CallbackHandler) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	log.Debug("<OnStart>\n\tINFO: %+v\n</OnStart>", info)
	return ctx
}

func (h CallbackHandler) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	log.Debug("<OnEnd>\n\tINFO %+v\n\tOUTPUT: %v\n</OnEnd>", info, output)
	return ctx
}

func (h CallbackHandler) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	log.Error("<OnError>\n\tINFO: %+v\n\tERROR: %v\n</OnError>", info, err)
	return ctx
}

func (h CallbackHandler) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	return ctx
}

func (h CallbackHandler) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	output.Close()
	return ctx
}
