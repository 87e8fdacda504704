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

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/llm/tool"
)

// ReferenceStep is the only optional stage: without a reference image it is
// skipped, and a failed analysis leaves the run without style data.
type ReferenceStep struct {
	inv tool.Invoker
}

func (s *ReferenceStep) Name() string { return "reference" }

func (s *ReferenceStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	st.StyleData = nil
	if len(st.ReferenceImage) == 0 {
		st.Log("No reference image provided, skipping style analysis")
		return pipeline.Skipped()
	}
	res := s.inv.Invoke(ctx, tool.ToolAnalyzeReferenceImage.String(), tool.Params{"image_data": st.ReferenceImage})
	style, err := tool.Decode[asset.StyleData](res)
	if err != nil {
		return pipeline.Degraded(failure("Reference analysis failed", err),
			"Reference analysis failed (continuing without): "+err.Error())
	}
	st.StyleData = &style
	st.Log("Reference image analyzed successfully")
	return pipeline.OK()
}
