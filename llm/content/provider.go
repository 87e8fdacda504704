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

// Package content provides the AI-driven capabilities of the asset workflow:
// brief parsing, reference style analysis, prompt composition and image
// synthesis.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/llm/tool"
)

// Provider is the content capability group. Implementations must be safe for
// concurrent use.
type Provider interface {
	ProcessBrief(ctx context.Context, brief, clientName string) (asset.BriefData, error)
	AnalyzeReferenceImage(ctx context.Context, image []byte) (asset.StyleData, error)
	GenerateImagePrompt(ctx context.Context, brief asset.BriefData, brand asset.Brand, style *asset.StyleData, platform string) (string, error)
	// GenerateImage may return nil bytes without error when the model produced
	// no image.
	GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, error)
	ResizeImage(ctx context.Context, image []byte, width, height int) ([]byte, error)
}

const (
	maxKeyElements = 5
	maxBrandColors = 3
	defaultSize    = 1080
)

var qualityModifiers = []string{
	"High quality, professional photography, marketing-ready",
	"Clean composition, visually appealing",
	"Text should be large, clear, and easy to read against the background",
}

// ComposePrompt builds the image prompt from brief, brand and optional style.
// The result is deterministic for identical inputs.
func ComposePrompt(brief asset.BriefData, brand asset.Brand, style *asset.StyleData) string {
	name := brand.Name
	if name == "" {
		name = "brand"
	}
	parts := []string{"Professional marketing image for " + name}

	if brief.Theme != "" {
		parts = append(parts, "Theme: "+brief.Theme)
	}
	if brief.Mood != "" {
		parts = append(parts, "Mood: "+brief.Mood)
	}
	if len(brief.KeyElements) > 0 {
		parts = append(parts, "Include: "+strings.Join(head(brief.KeyElements, maxKeyElements), ", "))
	}
	if len(brand.Colors) > 0 {
		parts = append(parts, "Brand colors: "+strings.Join(head(brand.Colors, maxBrandColors), ", "))
	}
	if brand.Style != "" {
		parts = append(parts, "Brand style: "+brand.Style)
	}
	if style != nil {
		if style.Lighting != "" {
			parts = append(parts, "Lighting: "+style.Lighting)
		}
		if style.StyleDescription != "" {
			parts = append(parts, "Visual style: "+style.StyleDescription)
		}
	}

	var text []string
	if brief.Headline != "" {
		text = append(text, fmt.Sprintf("Headline: '%s'", brief.Headline))
	}
	if brief.Subheadline != "" {
		text = append(text, fmt.Sprintf("Subheadline: '%s'", brief.Subheadline))
	}
	if brief.CallToAction != "" {
		text = append(text, fmt.Sprintf("Call-to-action: '%s'", brief.CallToAction))
	}
	if len(text) > 0 {
		parts = append(parts, "MUST include bold, readable text overlay with: "+strings.Join(text, ", "))
	} else if brief.TextOverlay != "" {
		parts = append(parts, fmt.Sprintf("MUST include text overlay: '%s'", brief.TextOverlay))
	}

	parts = append(parts, qualityModifiers...)
	return strings.Join(parts, ". ")
}

func head(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}

// wantsText reports whether a composed prompt asks for a text overlay.
func wantsText(prompt string) bool {
	return strings.Contains(prompt, "MUST include") && strings.Contains(strings.ToLower(prompt), "text")
}

type ProcessBriefReq struct {
	Brief      string `json:"brief" jsonschema:"description=campaign brief text"`
	ClientName string `json:"client_name" jsonschema:"description=client id or display name"`
}

type AnalyzeReferenceReq struct {
	ImageData []byte `json:"image_data" jsonschema:"description=reference image bytes"`
}

type GeneratePromptReq struct {
	BriefData asset.BriefData  `json:"brief_data"`
	BrandData asset.Brand      `json:"brand_data"`
	StyleData *asset.StyleData `json:"style_data,omitempty"`
	Platform  string           `json:"platform,omitempty"`
}

type GenerateImageReq struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width,omitempty" jsonschema:"minimum=1"`
	Height int    `json:"height,omitempty" jsonschema:"minimum=1"`
}

type ResizeImageReq struct {
	ImageData []byte `json:"image_data"`
	Width     int    `json:"width" jsonschema:"minimum=1"`
	Height    int    `json:"height" jsonschema:"minimum=1"`
}

// Tools exposes p as registry tools.
func Tools(p Provider) []tool.Tool {
	return []tool.Tool{
		tool.NewTool(tool.ToolProcessBrief, tool.DescProcessBrief, func(ctx context.Context, req ProcessBriefReq) (asset.BriefData, error) {
			return p.ProcessBrief(ctx, req.Brief, req.ClientName)
		}),
		tool.NewTool(tool.ToolAnalyzeReferenceImage, tool.DescAnalyzeReferenceImage, func(ctx context.Context, req AnalyzeReferenceReq) (asset.StyleData, error) {
			if len(req.ImageData) == 0 {
				return asset.StyleData{}, fmt.Errorf("image_data is empty")
			}
			return p.AnalyzeReferenceImage(ctx, req.ImageData)
		}),
		tool.NewTool(tool.ToolGenerateImagePrompt, tool.DescGenerateImagePrompt, func(ctx context.Context, req GeneratePromptReq) (string, error) {
			return p.GenerateImagePrompt(ctx, req.BriefData, req.BrandData, req.StyleData, req.Platform)
		}),
		tool.NewTool(tool.ToolGenerateImage, tool.DescGenerateImage, func(ctx context.Context, req GenerateImageReq) ([]byte, error) {
			w, h := req.Width, req.Height
			if w == 0 {
				w = defaultSize
			}
			if h == 0 {
				h = defaultSize
			}
			return p.GenerateImage(ctx, req.Prompt, w, h)
		}),
		tool.NewTool(tool.ToolResizeImage, tool.DescResizeImage, func(ctx context.Context, req ResizeImageReq) ([]byte, error) {
			return p.ResizeImage(ctx, req.ImageData, req.Width, req.Height)
		}),
	}
}

// NewRegistry builds the content registry for p.
func NewRegistry(p Provider) (*tool.Registry, error) {
	return tool.NewRegistry(Tools(p)...)
}
