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

// Package mcp serves a tool registry over the model context protocol.
package mcp

import (
	"errors"
	"fmt"
	golog "log"
	"os"

	"github.com/atcmedia/assetgen/llm/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const PromptMarketingBrief = "marketing_brief"

type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Verbose       bool
	Registry      *tool.Registry
}

type Server struct {
	*server.MCPServer
	opts ServerOptions
}

func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Registry == nil {
		return nil, errors.New("registry is required")
	}
	s := server.NewMCPServer(opts.ServerName, opts.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)
	for _, d := range opts.Registry.Descriptors() {
		t, _ := opts.Registry.Lookup(d.Name)
		s.AddTool(mcp.NewToolWithRawSchema(string(d.Name), d.Description, t.Schema()), toolHandler(opts.Registry, d.Name))
	}
	s.AddPrompt(mcp.NewPrompt(PromptMarketingBrief,
		mcp.WithPromptDescription("Walk through generating one marketing image with the asset tools"),
		mcp.WithArgument("client_id", mcp.ArgumentDescription("Client id as listed by list_clients"), mcp.RequiredArgument()),
		mcp.WithArgument("brief", mcp.ArgumentDescription("Free-text campaign brief"), mcp.RequiredArgument()),
		mcp.WithArgument("platform", mcp.ArgumentDescription("Target platform key")),
	), handleBriefPrompt)
	return &Server{MCPServer: s, opts: opts}, nil
}

// ServeStdio blocks serving requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	var opts []server.StdioOption
	if s.opts.Verbose {
		opts = append(opts, server.WithErrorLogger(golog.New(os.Stderr, "[mcp] ", golog.LstdFlags)))
	}
	if err := server.ServeStdio(s.MCPServer, opts...); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
