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

package tool

// Name identifies a capability. Dispatch is by Name only.
type Name string

func (n Name) String() string { return string(n) }

// content capabilities
const (
	ToolProcessBrief          Name = "process_brief"
	DescProcessBrief               = "Process a campaign brief and extract structured information (theme, mood, key elements, marketing text)"
	ToolAnalyzeReferenceImage Name = "analyze_reference_image"
	DescAnalyzeReferenceImage      = "Analyze a reference image to extract visual style information"
	ToolGenerateImagePrompt   Name = "generate_image_prompt"
	DescGenerateImagePrompt        = "Generate an optimized prompt for image generation from brief, brand and optional style data"
	ToolGenerateImage         Name = "generate_image"
	DescGenerateImage              = "Generate a marketing image using AI"
	ToolResizeImage           Name = "resize_image"
	DescResizeImage                = "Resize an image for a specific platform"
)

// storage capabilities
const (
	ToolListClients       Name = "list_clients"
	DescListClients            = "List all available clients"
	ToolGetBrandAssets    Name = "get_brand_assets"
	DescGetBrandAssets         = "Get brand assets (colors, fonts, style, tagline) for a client"
	ToolGetPastCampaigns  Name = "get_past_campaigns"
	DescGetPastCampaigns       = "Get list of past campaigns for reference images"
	ToolSaveImage         Name = "save_image"
	DescSaveImage              = "Save a generated image under the client's campaign folder"
	ToolDownloadReference Name = "download_reference"
	DescDownloadReference      = "Download a reference image from past campaigns"
)

var (
	ContentTools = []Name{ToolProcessBrief, ToolAnalyzeReferenceImage, ToolGenerateImagePrompt, ToolGenerateImage, ToolResizeImage}
	StorageTools = []Name{ToolListClients, ToolGetBrandAssets, ToolGetPastCampaigns, ToolSaveImage, ToolDownloadReference}
)
