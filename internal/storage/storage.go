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

// Package storage provides the brand catalog and image persistence
// capabilities of the asset workflow.
package storage

import (
	"context"
	"errors"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/llm/tool"
)

// Provider is the storage capability group. Implementations must be safe for
// concurrent use.
type Provider interface {
	ListClients(ctx context.Context) ([]asset.Client, error)
	// GetBrandAssets never fails for an unknown client: it returns
	// asset.FallbackBrand(clientID).
	GetBrandAssets(ctx context.Context, clientID string) (asset.Brand, error)
	GetPastCampaigns(ctx context.Context, clientID string) ([]asset.Campaign, error)
	SaveImage(ctx context.Context, clientID, campaign, platform string, image []byte, filename string) (asset.SavedImage, error)
	DownloadReference(ctx context.Context, fileID string) ([]byte, error)
}

var ErrNotFound = errors.New("not found")

type ListClientsReq struct{}

type ClientReq struct {
	ClientID string `json:"client_id" jsonschema:"description=client id as returned by list_clients"`
}

type SaveImageReq struct {
	ClientID     string `json:"client_id"`
	CampaignName string `json:"campaign_name"`
	Platform     string `json:"platform"`
	ImageData    []byte `json:"image_data"`
	Filename     string `json:"filename"`
}

type DownloadReferenceReq struct {
	FileID string `json:"file_id" jsonschema:"description=image id from get_past_campaigns"`
}

// Tools exposes p as registry tools.
func Tools(p Provider) []tool.Tool {
	return []tool.Tool{
		tool.NewTool(tool.ToolListClients, tool.DescListClients, func(ctx context.Context, _ ListClientsReq) ([]asset.Client, error) {
			return p.ListClients(ctx)
		}),
		tool.NewTool(tool.ToolGetBrandAssets, tool.DescGetBrandAssets, func(ctx context.Context, req ClientReq) (asset.Brand, error) {
			return p.GetBrandAssets(ctx, req.ClientID)
		}),
		tool.NewTool(tool.ToolGetPastCampaigns, tool.DescGetPastCampaigns, func(ctx context.Context, req ClientReq) ([]asset.Campaign, error) {
			return p.GetPastCampaigns(ctx, req.ClientID)
		}),
		tool.NewTool(tool.ToolSaveImage, tool.DescSaveImage, func(ctx context.Context, req SaveImageReq) (asset.SavedImage, error) {
			if len(req.ImageData) == 0 {
				return asset.SavedImage{}, errors.New("image_data is empty")
			}
			return p.SaveImage(ctx, req.ClientID, req.CampaignName, req.Platform, req.ImageData, req.Filename)
		}),
		tool.NewTool(tool.ToolDownloadReference, tool.DescDownloadReference, func(ctx context.Context, req DownloadReferenceReq) ([]byte, error) {
			return p.DownloadReference(ctx, req.FileID)
		}),
	}
}

// NewRegistry builds the storage registry for p.
func NewRegistry(p Provider) (*tool.Registry, error) {
	return tool.NewRegistry(Tools(p)...)
}
