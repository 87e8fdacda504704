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

package steps

import (
	"context"
	"time"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/atcmedia/assetgen/internal/utils"
	"github.com/atcmedia/assetgen/llm/tool"
)

// SaveStep persists the image. Its failures never fail the run: the image
// is already produced and is returned either way.
type SaveStep struct {
	inv       tool.Invoker
	platforms *platform.Table
	now       func() time.Time
}

func (s *SaveStep) Name() string { return "save" }

// CampaignName derives the campaign folder from the brief's theme.
func CampaignName(brief *asset.BriefData) string {
	theme := ""
	if brief != nil {
		theme = brief.Theme
	}
	if slug := utils.Slugify(theme); slug != "" {
		return slug
	}
	return "campaign"
}

// Filename is <campaign>_<YYYYMMDD_HHMMSS>.png.
func Filename(campaign string, t time.Time) string {
	return campaign + "_" + t.Format("20060102_150405") + ".png"
}

func (s *SaveStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	if len(st.GeneratedImage) == 0 {
		st.Log("No image to save")
		return pipeline.Skipped()
	}
	campaign := CampaignName(st.BriefData)
	key := st.Platform
	if key == "" {
		key = s.platforms.DefaultKey()
	}
	res := s.inv.Invoke(ctx, tool.ToolSaveImage.String(), tool.Params{
		"client_id":     st.ClientID,
		"campaign_name": campaign,
		"platform":      key,
		"image_data":    st.GeneratedImage,
		"filename":      Filename(campaign, s.now()),
	})
	saved, err := tool.Decode[asset.SavedImage](res)
	if err != nil {
		return pipeline.Degraded(failure("Save failed", err), "Save warning: "+err.Error())
	}
	st.SavedPath = saved.Location()
	st.Log("Image saved to: " + st.SavedPath)
	return pipeline.OK()
}
