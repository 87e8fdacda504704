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

package content

import (
	"context"
	"strings"
	"sync"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/llm/tool"
)

// Mock is a deterministic offline Provider. Failures can be injected per
// capability, which the CLI's mock mode and the tests rely on.
type Mock struct {
	mu       sync.RWMutex
	failures map[tool.Name]error
	images   map[tool.Name][]byte
	calls    map[tool.Name]int
}

var _ Provider = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{
		failures: map[tool.Name]error{},
		images:   map[tool.Name][]byte{},
		calls:    map[tool.Name]int{},
	}
}

// FailOn makes the named capability return err.
func (m *Mock) FailOn(name tool.Name, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[name] = err
	return m
}

// EmptyImage makes GenerateImage succeed without producing an image.
func (m *Mock) EmptyImage() *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[tool.ToolGenerateImage] = []byte{}
	return m
}

// Calls returns how often the named capability was invoked.
func (m *Mock) Calls(name tool.Name) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[name]
}

func (m *Mock) enter(name tool.Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	return m.failures[name]
}

var themeKeywords = []struct {
	keyword, theme, mood string
}{
	{"christmas", "Christmas", "festive"},
	{"holiday", "Holiday", "festive"},
	{"diwali", "Diwali", "festive"},
	{"summer", "Summer Sale", "energetic"},
	{"launch", "Product Launch", "exciting"},
	{"sale", "Sale", "energetic"},
	{"winter", "Winter", "cozy"},
}

func (m *Mock) ProcessBrief(_ context.Context, brief, clientName string) (asset.BriefData, error) {
	if err := m.enter(tool.ToolProcessBrief); err != nil {
		return asset.BriefData{}, err
	}
	theme, mood := "Campaign", "professional"
	lower := strings.ToLower(brief)
	for _, k := range themeKeywords {
		if strings.Contains(lower, k.keyword) {
			theme, mood = k.theme, k.mood
			break
		}
	}
	var elements []string
	for _, w := range strings.Fields(brief) {
		w = strings.Trim(w, ".,!?;:")
		if len(w) > 3 {
			elements = append(elements, strings.ToLower(w))
		}
	}
	return asset.BriefData{
		Theme:          theme,
		Mood:           mood,
		KeyElements:    head(elements, maxKeyElements),
		Headline:       theme + " at " + clientName,
		TextOverlay:    brief,
		StyleKeywords:  []string{mood, "marketing"},
		TargetAudience: "general audience",
		CallToAction:   "Shop Now",
	}, nil
}

func (m *Mock) AnalyzeReferenceImage(_ context.Context, image []byte) (asset.StyleData, error) {
	if err := m.enter(tool.ToolAnalyzeReferenceImage); err != nil {
		return asset.StyleData{}, err
	}
	return asset.StyleData{
		Lighting:         "soft natural light",
		Composition:      "centered subject",
		Mood:             "warm",
		StyleKeywords:    []string{"clean", "bright"},
		StyleDescription: "Bright, clean product photography with soft shadows.",
	}, nil
}

func (m *Mock) GenerateImagePrompt(_ context.Context, brief asset.BriefData, brand asset.Brand, style *asset.StyleData, _ string) (string, error) {
	if err := m.enter(tool.ToolGenerateImagePrompt); err != nil {
		return "", err
	}
	return ComposePrompt(brief, brand, style), nil
}

func (m *Mock) GenerateImage(_ context.Context, prompt string, width, height int) ([]byte, error) {
	if err := m.enter(tool.ToolGenerateImage); err != nil {
		return nil, err
	}
	m.mu.RLock()
	img, ok := m.images[tool.ToolGenerateImage]
	m.mu.RUnlock()
	if ok {
		return img, nil
	}
	return Placeholder(prompt, width, height)
}

func (m *Mock) ResizeImage(_ context.Context, image []byte, width, height int) ([]byte, error) {
	if err := m.enter(tool.ToolResizeImage); err != nil {
		return nil, err
	}
	return Resize(image, width, height)
}
