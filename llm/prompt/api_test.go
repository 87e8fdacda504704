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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTemplates(t *testing.T) {
	s, err := Brief.Render(map[string]string{"Brief": "Summer sale & <fun>", "ClientName": "Acme"})
	require.NoError(t, err)
	assert.Contains(t, s, "campaign brief for Acme")
	assert.Contains(t, s, "Brief: Summer sale & <fun>")

	s, err = Image.Render(map[string]any{"Prompt": "P", "WithText": true, "AspectRatio": "1:1"})
	require.NoError(t, err)
	assert.Contains(t, s, "TEXT IS REQUIRED")
	assert.Contains(t, s, "Aspect ratio 1:1")

	s, err = Image.Render(map[string]any{"Prompt": "P", "WithText": false, "AspectRatio": "16:9"})
	require.NoError(t, err)
	assert.NotContains(t, s, "TEXT IS REQUIRED")

	s, err = Style.Render(nil)
	require.NoError(t, err)
	assert.Contains(t, s, "style_description")
	assert.NotEmpty(t, PromptAssistant)

	s, err = Campaign.Render(map[string]string{"ClientID": "acme", "Brief": "Spring launch"})
	require.NoError(t, err)
	assert.Contains(t, s, "client `acme`.")
	assert.NotContains(t, s, "on platform")
}

func TestFilePrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.md")
	require.NoError(t, os.WriteFile(path, []byte("hello {{.}}"), 0o644))

	p, err := NewFilePrompt(&FilePrompt{Type: PromptTypeGoTemplate, Path: path, Data: "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", p.String())

	p, err = NewFilePrompt(&FilePrompt{Type: PromptTypePlainText, Path: path})
	require.NoError(t, err)
	assert.Equal(t, "hello {{.}}", p.String())

	_, err = NewFilePrompt(&FilePrompt{Type: "bogus"})
	assert.Error(t, err)
}
