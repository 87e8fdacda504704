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

package storage

import (
	"context"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/llm/tool"
)

// Remote forwards every capability to a tool server exposing the storage
// tools under their usual names, typically an MCP server reached through
// tool.MCPClient.
type Remote struct {
	inv tool.Invoker
}

var _ Provider = (*Remote)(nil)

func NewRemote(inv tool.Invoker) *Remote {
	return &Remote{inv: inv}
}

func call[T any](ctx context.Context, inv tool.Invoker, name tool.Name, params tool.Params) (T, error) {
	return tool.Decode[T](inv.Invoke(ctx, string(name), params))
}

func (r *Remote) ListClients(ctx context.Context) ([]asset.Client, error) {
	return call[[]asset.Client](ctx, r.inv, tool.ToolListClients, tool.Params{})
}

func (r *Remote) GetBrandAssets(ctx context.Context, clientID string) (asset.Brand, error) {
	return call[asset.Brand](ctx, r.inv, tool.ToolGetBrandAssets, tool.Params{"client_id": clientID})
}

func (r *Remote) GetPastCampaigns(ctx context.Context, clientID string) ([]asset.Campaign, error) {
	return call[[]asset.Campaign](ctx, r.inv, tool.ToolGetPastCampaigns, tool.Params{"client_id": clientID})
}

func (r *Remote) SaveImage(ctx context.Context, clientID, campaign, platform string, image []byte, filename string) (asset.SavedImage, error) {
	return call[asset.SavedImage](ctx, r.inv, tool.ToolSaveImage, tool.Params{
		"client_id":     clientID,
		"campaign_name": campaign,
		"platform":      platform,
		"image_data":    image,
		"filename":      filename,
	})
}

func (r *Remote) DownloadReference(ctx context.Context, fileID string) ([]byte, error) {
	return call[[]byte](ctx, r.inv, tool.ToolDownloadReference, tool.Params{"file_id": fileID})
}
