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
	"context"

	"github.com/atcmedia/assetgen/internal/utils"
	"github.com/atcmedia/assetgen/llm/prompt"
	"github.com/atcmedia/assetgen/llm/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolHandler answers with the JSON encoding of the tool.Result, so clients
// see the same success/error shape as an in-process call.
func toolHandler(reg *tool.Registry, name tool.Name) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := reg.Invoke(ctx, string(name), tool.Params(request.GetArguments()))
		var final string
		if js, err := utils.MarshalJSONBytes(res); err != nil {
			res = tool.Fail(err)
			final = res.Error
		} else {
			final = string(js)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(final),
			},
			IsError: !res.Success,
		}, nil
	}
}

func handleBriefPrompt(
	ctx context.Context,
	request mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments
	text, err := prompt.Campaign.Render(map[string]string{
		"ClientID": args["client_id"],
		"Brief":    args["brief"],
		"Platform": args["platform"],
	})
	if err != nil {
		return nil, err
	}
	return &mcp.GetPromptResult{
		Description: "A prompt for generating a marketing image",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
