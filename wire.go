// Copyright 2025 CloudWeGo Authors
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

/**
 * Copyright 2024 ByteDance Inc.
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

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/atcmedia/assetgen/internal/config"
	"github.com/atcmedia/assetgen/internal/log"
	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/atcmedia/assetgen/internal/storage"
	"github.com/atcmedia/assetgen/llm"
	"github.com/atcmedia/assetgen/llm/content"
	"github.com/atcmedia/assetgen/llm/tool"
)

// app holds the providers one CLI action works with.
type app struct {
	cfg      config.Config
	table    *platform.Table
	storage  storage.Provider
	content  content.Provider
	registry *tool.Registry
	closers  []func() error
}

type appOptions struct {
	// Content builds the content provider and the merged registry.
	Content bool
	// Mock uses the offline content provider, so no model is needed.
	Mock bool
}

func newApp(ctx context.Context, cfg config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: cfg}
	var err error
	if a.table, err = cfg.Table(); err != nil {
		return nil, err
	}
	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	sreg, err := storage.NewRegistry(a.storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = sreg
	if !opts.Content {
		return a, nil
	}
	if a.content, err = newContent(ctx, cfg, opts.Mock); err != nil {
		a.Close()
		return nil, err
	}
	creg, err := content.NewRegistry(a.content)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.registry, err = tool.Merge(sreg, creg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.Storage.Backend {
	case config.BackendMCP:
		mc, err := startMCP(ctx, a.cfg.Storage.MCP)
		if err != nil {
			return fmt.Errorf("connect storage server: %w", err)
		}
		a.closers = append(a.closers, mc.Close)
		a.storage = storage.NewRemote(mc)
	default:
		local, err := storage.NewLocal(storage.LocalOptions{
			OutputDir: a.cfg.Storage.OutputDir,
			BrandsDir: a.cfg.Storage.BrandsDir,
			Watch:     a.cfg.Storage.Watch,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, local.Close)
		a.storage = local
	}
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Debug("close: %v", err)
		}
	}
	a.closers = nil
}

func startMCP(ctx context.Context, s config.MCPServer) (*tool.MCPClient, error) {
	mcfg := tool.MCPConfig{
		Type:    tool.MCPTypeStdio,
		Command: s.Command,
		Args:    s.Args,
		Envs:    s.Envs,
	}
	if s.SSEURL != "" {
		mcfg = tool.MCPConfig{Type: tool.MCPTypeSSE, SSEURL: s.SSEURL}
	}
	mc, err := tool.NewMCPClient(mcfg)
	if err != nil {
		return nil, err
	}
	if err := mc.Start(ctx); err != nil {
		mc.Close()
		return nil, err
	}
	return mc, nil
}

func newContent(ctx context.Context, cfg config.Config, mock bool) (content.Provider, error) {
	if mock || cfg.Content.Mock {
		return content.NewMock(), nil
	}
	if err := cfg.RequireModels(); err != nil {
		return nil, err
	}
	text, err := llm.NewChatModel(ctx, modelConfig("text", cfg.Models.Text))
	if err != nil {
		return nil, err
	}
	opts := content.LLMOptions{
		Text:                text,
		PlaceholderFallback: cfg.Content.PlaceholderFallback,
		Retries:             cfg.Content.Retries,
		Timeout:             cfg.Content.Timeout,
	}
	if cfg.Models.Vision.Name != "" {
		if opts.Vision, err = llm.NewChatModel(ctx, modelConfig("vision", cfg.Models.Vision)); err != nil {
			return nil, err
		}
	}
	if cfg.Models.Image.Name != "" {
		if opts.Image, err = llm.NewChatModel(ctx, modelConfig("image", cfg.Models.Image)); err != nil {
			return nil, err
		}
	} else {
		log.Info("no image model configured, images will be placeholders")
	}
	return content.NewLLM(opts)
}

func modelConfig(alias string, m config.Model) llm.ModelConfig {
	return llm.ModelConfig{
		Name:        alias,
		APIType:     llm.NewModelType(m.Type),
		BaseURL:     m.BaseURL,
		APIKey:      m.APIKey,
		ModelName:   m.Name,
		Temperature: m.Temperature,
		MaxTokens:   m.MaxTokens,
		Timeout:     m.Timeout,
	}
}

// assistantTools are the tools the assistant may call: read-only storage,
// prompt composition, and whatever the configured external servers offer.
var assistantTools = []tool.Name{
	tool.ToolListClients,
	tool.ToolGetBrandAssets,
	tool.ToolGetPastCampaigns,
	tool.ToolGenerateImagePrompt,
}

func (a *app) newAssistant(ctx context.Context) (llm.Generator, error) {
	if err := a.cfg.RequireModels(); err != nil {
		return nil, err
	}
	chat, err := llm.NewChatModel(ctx, modelConfig("assistant", a.cfg.Models.Text))
	if err != nil {
		return nil, err
	}
	ts, err := a.registry.EinoTools(assistantTools...)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, s := range a.cfg.Assistant.MCPServers {
		mc, err := startMCP(ctx, s)
		if err != nil {
			errs = append(errs, fmt.Errorf("connect %s%s: %w", s.Command, s.SSEURL, err))
			continue
		}
		a.closers = append(a.closers, mc.Close)
		extra, err := mc.GetTools(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ts = append(ts, extra...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return llm.MakeAgent(ctx, "assistant", chat, ts, llm.AgentConfig{
		MaxSteps: a.cfg.Assistant.MaxSteps,
		Retries:  a.cfg.Content.Retries,
		Timeout:  a.cfg.Content.Timeout,
	})
}
