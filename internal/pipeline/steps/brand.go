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

type BrandStep struct {
	inv tool.Invoker
}

func (s *BrandStep) Name() string { return "brand" }

func (s *BrandStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	res := s.inv.Invoke(ctx, tool.ToolGetBrandAssets.String(), tool.Params{"client_id": st.ClientID})
	brand, err := tool.Decode[asset.Brand](res)
	if err != nil {
		return pipeline.Fatal(failure("Brand retrieval failed", err), "Error: "+err.Error())
	}
	st.BrandData = &brand
	name := brand.Name
	if name == "" {
		name = st.ClientID
	}
	st.Log("Brand assets retrieved for " + name)
	return pipeline.OK()
}
