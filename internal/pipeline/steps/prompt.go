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
	"errors"

	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/llm/tool"
)

type PromptStep struct {
	inv tool.Invoker
}

func (s *PromptStep) Name() string { return "prompt" }

func (s *PromptStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	if st.BriefData == nil || st.BrandData == nil {
		err := errors.New("brief or brand data missing")
		return pipeline.Fatal(failure("Prompt building failed", err), "Error: "+err.Error())
	}
	res := s.inv.Invoke(ctx, tool.ToolGenerateImagePrompt.String(), tool.Params{
		"brief_data": *st.BriefData,
		"brand_data": *st.BrandData,
		"style_data": st.StyleData,
		"platform":   st.Platform,
	})
	p, err := tool.Decode[string](res)
	if err != nil {
		return pipeline.Fatal(failure("Prompt building failed", err), "Error: "+err.Error())
	}
	st.ImagePrompt = p
	st.Log("Image prompt generated")
	return pipeline.OK()
}
