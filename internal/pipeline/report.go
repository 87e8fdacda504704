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

package pipeline

import (
	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/platform"
)

// Report is the serializable summary of a finished run.
type Report struct {
	RunID       string           `json:"run_id"`
	ClientID    string           `json:"client_id"`
	Platform    string           `json:"platform"`
	Size        platform.Size    `json:"size"`
	Success     bool             `json:"success"`
	Error       string           `json:"error,omitempty"`
	Brief       *asset.BriefData `json:"brief_data,omitempty"`
	Brand       *asset.Brand     `json:"brand_data,omitempty"`
	Style       *asset.StyleData `json:"style_data,omitempty"`
	ImagePrompt string           `json:"image_prompt,omitempty"`
	ImageDigest string           `json:"image_sha256,omitempty"`
	ImageBytes  int              `json:"image_bytes,omitempty"`
	SavedPath   string           `json:"saved_path,omitempty"`
	Messages    []string         `json:"messages"`
	History     []StageRecord    `json:"history"`
}

func (st *RunState) Report() Report {
	return Report{
		RunID:       st.RunID,
		ClientID:    st.ClientID,
		Platform:    st.Platform,
		Size:        st.Size,
		Success:     st.Succeeded(),
		Error:       st.Error,
		Brief:       st.BriefData,
		Brand:       st.BrandData,
		Style:       st.StyleData,
		ImagePrompt: st.ImagePrompt,
		ImageDigest: st.ImageDigest,
		ImageBytes:  len(st.GeneratedImage),
		SavedPath:   st.SavedPath,
		Messages:    st.Messages(),
		History:     append([]StageRecord(nil), st.History...),
	}
}
