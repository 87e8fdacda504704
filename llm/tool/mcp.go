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

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atcmedia/assetgen/version"
	emcp "github.com/cloudwego/eino-ext/components/tool/mcp"
	etool "github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

type MCPConfig struct {
	Type    MCPType
	Command string
	Args    []string
	Envs    []string
	SSEURL  string
}

type MCPType string

const (
	MCPTypeStdio MCPType = "stdio"
	MCPTypeSSE   MCPType = "sse"
)

// MCPClient reaches a tool server over the model context protocol.
type MCPClient struct {
	cli *client.Client
}

var _ Invoker = (*MCPClient)(nil)

func NewMCPClient(opts MCPConfig) (*MCPClient, error) {
	var cli *client.Client
	var err error
	switch opts.Type {
	case MCPTypeStdio, "":
		if opts.Command == "" {
			return nil, errors.New("command is empty")
		}
		cli, err = client.NewStdioMCPClient(opts.Command, opts.Envs, opts.Args...)
	case MCPTypeSSE:
		if opts.SSEURL == "" {
			return nil, errors.New("sse url is empty")
		}
		cli, err = client.NewSSEMCPClient(opts.SSEURL)
	default:
		return nil, fmt.Errorf("unsupported mcp type %q", opts.Type)
	}
	if err != nil {
		return nil, err
	}
	return &MCPClient{cli: cli}, nil
}

// WrapMCPClient adopts an already constructed client, such as an in-process one.
func WrapMCPClient(cli *client.Client) *MCPClient {
	return &MCPClient{cli: cli}
}

// Start launches the transport and performs the initialize handshake.
func (c *MCPClient) Start(ctx context.Context) error {
	if err := c.cli.Start(ctx); err != nil {
		return err
	}
	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "assetgen",
		Version: version.Version,
	}
	_, err := c.cli.Initialize(ctx, initRequest)
	return err
}

func (c *MCPClient) Close() error {
	return c.cli.Close()
}

// GetTools lists the remote tools as eino tools, for use by an agent.
func (c *MCPClient) GetTools(ctx context.Context, names ...Name) ([]etool.BaseTool, error) {
	conf := &emcp.Config{Cli: c.cli}
	for _, n := range names {
		conf.ToolNameList = append(conf.ToolNameList, string(n))
	}
	return emcp.GetTools(ctx, conf)
}

// Invoke calls a remote tool. The server answers with the JSON encoding of a
// Result in its text content; the data comes back decoded as plain JSON
// values, so callers read it through Decode.
func (c *MCPClient) Invoke(ctx context.Context, name string, params Params) Result {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = map[string]any(params)
	resp, err := c.cli.CallTool(ctx, req)
	if err != nil {
		return Fail(err)
	}
	text := contentText(resp.Content)
	var res Result
	if err := json.Unmarshal([]byte(text), &res); err == nil && (res.Success || res.Error != "") {
		if !res.Success {
			return Fail(errors.New(res.Error))
		}
		return res
	}
	if resp.IsError {
		return Fail(errors.New(text))
	}
	return OK(text)
}

func contentText(cs []mcp.Content) string {
	var sb strings.Builder
	for _, c := range cs {
		if tc, ok := mcp.AsTextContent(c); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
