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

// Package asset holds the records exchanged between the content and storage
// capabilities and the workflow engine.
package asset

// BriefData is the structured reading of a campaign brief.
type BriefData struct {
	Theme           string   `json:"theme,omitempty"`
	Mood            string   `json:"mood,omitempty"`
	KeyElements     []string `json:"key_elements,omitempty"`
	ColorsSuggested []string `json:"colors_suggested,omitempty"`
	Headline        string   `json:"headline,omitempty"`
	Subheadline     string   `json:"subheadline,omitempty"`
	TextOverlay     string   `json:"text_overlay,omitempty"`
	StyleKeywords   []string `json:"style_keywords,omitempty"`
	TargetAudience  string   `json:"target_audience,omitempty"`
	CallToAction    string   `json:"call_to_action,omitempty"`
}

// StyleData is the visual style extracted from a reference image.
type StyleData struct {
	ColorPalette     []string `json:"color_palette,omitempty"`
	Lighting         string   `json:"lighting,omitempty"`
	Composition      string   `json:"composition,omitempty"`
	Mood             string   `json:"mood,omitempty"`
	Texture          string   `json:"texture,omitempty"`
	StyleKeywords    []string `json:"style_keywords,omitempty"`
	StyleDescription string   `json:"style_description,omitempty"`
}

// Brand is the brand kit of one client.
type Brand struct {
	Name           string   `json:"name" yaml:"name"`
	Colors         []string `json:"colors,omitempty" yaml:"colors"`
	PrimaryColor   string   `json:"primary_color,omitempty" yaml:"primary_color"`
	SecondaryColor string   `json:"secondary_color,omitempty" yaml:"secondary_color"`
	FontPrimary    string   `json:"font_primary,omitempty" yaml:"font_primary"`
	FontSecondary  string   `json:"font_secondary,omitempty" yaml:"font_secondary"`
	Style          string   `json:"style,omitempty" yaml:"style"`
	Tagline        string   `json:"tagline,omitempty" yaml:"tagline"`
	LogoURL        string   `json:"logo_url,omitempty" yaml:"logo_url"`
	Guidelines     string   `json:"guidelines,omitempty" yaml:"guidelines"`
}

// FallbackBrand is returned for clients missing from the catalog.
func FallbackBrand(clientID string) Brand {
	return Brand{
		Name:         clientID,
		Colors:       []string{"#333333", "#666666"},
		PrimaryColor: "#333333",
		Style:        "Professional",
		Guidelines:   "Standard professional marketing.",
	}
}

type Client struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

type CampaignImage struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail"`
}

// Campaign summarizes a past campaign usable as style reference.
type Campaign struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Date     string          `json:"date,omitempty" yaml:"date"`
	Platform string          `json:"platform,omitempty" yaml:"platform"`
	Images   []CampaignImage `json:"images,omitempty" yaml:"images"`
}

// SavedImage locates a persisted image. Which fields are set depends on the
// backend.
type SavedImage struct {
	FilePath string `json:"file_path,omitempty"`
	FileID   string `json:"file_id,omitempty"`
	WebLink  string `json:"web_link,omitempty"`
}

// Location is the most specific locator available, or "".
func (s SavedImage) Location() string {
	switch {
	case s.FilePath != "":
		return s.FilePath
	case s.WebLink != "":
		return s.WebLink
	default:
		return s.FileID
	}
}
