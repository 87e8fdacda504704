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

type BriefStep struct {
	inv tool.Invoker
}

func (s *BriefStep) Name() string { return "brief" }

func (s *BriefStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	res := s.inv.Invoke(ctx, tool.ToolProcessBrief.String(), tool.Params{
		"brief":       st.Brief,
		"client_name": st.ClientID,
	})
	data, err := tool.Decode[asset.BriefData](res)
	if err != nil {
		return pipeline.Fatal(failure("Brief processing failed", err), "Error: "+err.Error())
	}
	st.BriefData = &data
	st.Log("Brief processed successfully")
	return pipeline.OK()
}
