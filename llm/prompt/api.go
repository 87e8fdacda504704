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

package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

type Prompt interface {
	String() string
}

type FilePrompt struct {
	Type PromptType         `json:"type"`
	Path string             `json:"path"`
	Data any                `json:"data"`
	tpl  *template.Template `json:"-"`
	file []byte             `json:"-"`
}

type PromptType string

const (
	PromptTypePlainText  PromptType = "text"
	PromptTypeDummy      PromptType = "dummy"
	PromptTypeGoTemplate PromptType = "go-template"
)

func (p FilePrompt) String() string {
	if p.tpl == nil {
		return string(p.file)
	}
	var buf = bytes.NewBuffer(nil)
	err := p.tpl.Execute(buf, p.Data)
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// NewFilePrompt loads a prompt from disk, so deployments can override the
// embedded templates.
func NewFilePrompt(c *FilePrompt) (Prompt, error) {
	switch c.Type {
	case PromptTypePlainText:
		bs, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, err
		}
		c.file = bs
		return c, nil
	case PromptTypeDummy:
		return TextPrompt(""), nil
	case PromptTypeGoTemplate:
		tpl, err := template.ParseFiles(c.Path)
		if err != nil {
			return nil, err
		}
		c.tpl = tpl
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported prompt type %q", c.Type)
	}
}

type TextPrompt string

func (p TextPrompt) String() string {
	return string(p)
}

func NewTextPrompt(content string) Prompt {
	return TextPrompt(content)
}

// Template is an embedded go-template prompt.
type Template struct {
	name string
	tpl  *template.Template
}

func mustTemplate(name, text string) Template {
	return Template{name: name, tpl: template.Must(template.New(name).Parse(text))}
}

// Render executes the template with data.
func (t Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", t.name, err)
	}
	return buf.String(), nil
}

//go:embed brief.md
var briefText string

//go:embed style.md
var styleText string

//go:embed image.md
var imageText string

//go:embed campaign.md
var campaignText string

//go:embed assistant.md
var PromptAssistant string

var (
	// Brief takes {Brief, ClientName}.
	Brief = mustTemplate("brief", briefText)
	// Style takes no data.
	Style = mustTemplate("style", styleText)
	// Image takes {Prompt, WithText, AspectRatio}.
	Image = mustTemplate("image", imageText)
	// Campaign takes {ClientID, Brief, Platform}.
	Campaign = mustTemplate("campaign", campaignText)
)
