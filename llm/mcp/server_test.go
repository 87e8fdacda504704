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

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"github.com/atcmedia/assetgen/internal/storage"
	"github.com/atcmedia/assetgen/llm/content"
	"github.com/atcmedia/assetgen/llm/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	local, err := storage.NewLocal(storage.LocalOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	sreg, err := storage.NewRegistry(local)
	require.NoError(t, err)
	creg, err := content.NewRegistry(content.NewMock())
	require.NoError(t, err)
	reg, err := tool.Merge(sreg, creg)
	require.NoError(t, err)

	svr, err := NewServer(ServerOptions{
		ServerName:    "assetgen",
		ServerVersion: "test",
		Registry:      reg,
	})
	require.NoError(t, err)
	return svr
}

func sendAndRecv(t *testing.T, req any, stdinWriter *io.PipeWriter, scanner *bufio.Scanner) map[string]any {
	requestBytes, err := json.Marshal(req)
	require.NoError(t, err)
	_, err = stdinWriter.Write(append(requestBytes, '\n'))
	require.NoError(t, err)

	if !scanner.Scan() {
		t.Fatal("failed to read response")
	}
	var response map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
	return response
}

func TestNewServerRequiresRegistry(t *testing.T) {
	_, err := NewServer(ServerOptions{ServerName: "x"})
	assert.Error(t, err)
}

func TestStdioServer(t *testing.T) {
	svr := newTestServer(t)

	stdinReader, stdinWriter := io.Pipe()
	stdoutReader, stdoutWriter := io.Pipe()

	stdioServer := server.NewStdioServer(svr.MCPServer)
	stdioServer.SetErrorLogger(log.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrCh := make(chan error, 1)
	go func() {
		err := stdioServer.Listen(ctx, stdinReader, stdoutWriter)
		if err != nil && err != io.EOF && err != context.Canceled {
			serverErrCh <- err
		}
		stdoutWriter.Close()
		close(serverErrCh)
	}()

	time.Sleep(100 * time.Millisecond)
	scanner := bufio.NewScanner(stdoutReader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	resp := sendAndRecv(t, map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": "2024-11-05",
			"clientInfo": map[string]any{
				"name":    "test-client",
				"version": "1.0.0",
			},
		},
	}, stdinWriter, scanner)
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "initialize failed: %v", resp)
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "assetgen", info["name"])

	resp = sendAndRecv(t, map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/list",
	}, stdinWriter, scanner)
	result, ok = resp["result"].(map[string]any)
	require.True(t, ok, "tools/list failed: %v", resp)
	var names []string
	for _, raw := range result["tools"].([]any) {
		names = append(names, raw.(map[string]any)["name"].(string))
	}
	assert.Len(t, names, len(tool.ContentTools)+len(tool.StorageTools))
	assert.Contains(t, names, string(tool.ToolSaveImage))

	cancel()
	stdinWriter.Close()
	if err := <-serverErrCh; err != nil {
		t.Errorf("unexpected server error: %v", err)
	}
}

func startClient(t *testing.T, svr *Server) *tool.MCPClient {
	cli, err := client.NewInProcessClient(svr.MCPServer)
	require.NoError(t, err)
	mc := tool.WrapMCPClient(cli)
	require.NoError(t, mc.Start(context.Background()))
	t.Cleanup(func() { mc.Close() })
	return mc
}

func TestRemoteStorageOverMCP(t *testing.T) {
	mc := startClient(t, newTestServer(t))
	remote := storage.NewRemote(mc)
	ctx := context.Background()

	clients, err := remote.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	brand, err := remote.GetBrandAssets(ctx, "burgers-and-curries")
	require.NoError(t, err)
	assert.Equal(t, "Burgers & Curries", brand.Name)

	saved, err := remote.SaveImage(ctx, "burgers-and-curries", "summer", "instagram_post", []byte{0x89, 'P', 'N', 'G'}, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "burgers-and-curries/summer/instagram_post/a.png", saved.FileID)

	data, err := remote.DownloadReference(ctx, saved.FileID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

	_, err = remote.DownloadReference(ctx, "../etc/passwd")
	assert.ErrorContains(t, err, "invalid file id")
}

func TestInvokeErrorsOverMCP(t *testing.T) {
	mc := startClient(t, newTestServer(t))
	ctx := context.Background()

	res := mc.Invoke(ctx, string(tool.ToolGetBrandAssets), tool.Params{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid parameters")

	res = mc.Invoke(ctx, "no_such_tool", tool.Params{})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	res = mc.Invoke(ctx, string(tool.ToolProcessBrief), tool.Params{"brief": "Summer sale", "client_name": "Acme"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Summer Sale", res.Data.(map[string]any)["theme"])
}

func TestEinoToolsOverMCP(t *testing.T) {
	mc := startClient(t, newTestServer(t))
	ts, err := mc.GetTools(context.Background(), tool.ToolListClients, tool.ToolGetBrandAssets)
	require.NoError(t, err)
	assert.Len(t, ts, 2)
}

func TestMarketingBriefPrompt(t *testing.T) {
	cli, err := client.NewInProcessClient(newTestServer(t).MCPServer)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cli.Start(ctx))
	defer cli.Close()
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	_, err = cli.Initialize(ctx, initReq)
	require.NoError(t, err)

	req := mcp.GetPromptRequest{}
	req.Params.Name = PromptMarketingBrief
	req.Params.Arguments = map[string]string{"client_id": "acme", "brief": "Spring launch", "platform": "tiktok"}
	res, err := cli.GetPrompt(ctx, req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := mcp.AsTextContent(res.Messages[0].Content)
	require.True(t, ok)
	assert.Contains(t, text.Text, "client `acme` on platform `tiktok`")
	assert.Contains(t, text.Text, "Spring launch")
}
