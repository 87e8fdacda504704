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
	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/atcmedia/assetgen/llm/tool"
)

// ErrNoImage is the run error when generation succeeds without an image.
// Capitalized on purpose: its text is shown verbatim as RunState.Error.
var ErrNoImage = errors.New("Image generation returned no image")

type ImageStep struct {
	inv       tool.Invoker
	platforms *platform.Table
}

func (s *ImageStep) Name() string { return "image" }

func (s *ImageStep) Run(ctx context.Context, st *pipeline.RunState) *pipeline.StageResult {
	st.Size = s.platforms.Resolve(st.Platform)
	res := s.inv.Invoke(ctx, tool.ToolGenerateImage.String(), tool.Params{
		"prompt": st.ImagePrompt,
		"width":  st.Size.Width,
		"height": st.Size.Height,
	})
	img, err := tool.Decode[[]byte](res)
	if err != nil {
		return pipeline.Fatal(failure("Image generation failed", err), "Error: "+err.Error())
	}
	// a successful call is not enough: the image itself must be present
	if len(img) == 0 {
		return pipeline.Fatal(ErrNoImage, "Image generation failed")
	}
	st.GeneratedImage = img
	st.ImageDigest = pipeline.Digest(img)
	st.Log("Image generated successfully")
	return pipeline.OK()
}
