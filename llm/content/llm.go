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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/log"
	"github.com/atcmedia/assetgen/llm"
	"github.com/atcmedia/assetgen/llm/prompt"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type LLMOptions struct {
	// Text parses briefs. Required.
	Text model.BaseChatModel
	// Vision analyzes reference images. Defaults to Text.
	Vision model.BaseChatModel
	// Image synthesizes images. When nil, images are placeholders.
	Image model.BaseChatModel
	// PlaceholderFallback renders a placeholder when the image model fails
	// or replies without an image, instead of reporting no image.
	PlaceholderFallback bool
	Retries             int           // default: 3
	Timeout             time.Duration // per attempt, default: 600s
}

// LLM is a Provider backed by chat models.
type LLM struct {
	opts LLMOptions
}

var _ Provider = (*LLM)(nil)

func NewLLM(opts LLMOptions) (*LLM, error) {
	if opts.Text == nil {
		return nil, errors.New("text model is required")
	}
	if opts.Vision == nil {
		opts.Vision = opts.Text
	}
	if opts.Retries == 0 {
		opts.Retries = 3
	}
	if opts.Timeout == 0 {
		opts.Timeout = 600 * time.Second
	}
	return &LLM{opts: opts}, nil
}

func (l *LLM) ProcessBrief(ctx context.Context, brief, clientName string) (asset.BriefData, error) {
	var ret asset.BriefData
	p, err := prompt.Brief.Render(map[string]string{"Brief": brief, "ClientName": clientName})
	if err != nil {
		return ret, err
	}
	out, err := l.generate(ctx, l.opts.Text, []*schema.Message{schema.UserMessage(p)})
	if err != nil {
		return ret, err
	}
	if err := parseJSONReply(out.Content, &ret); err != nil {
		return ret, fmt.Errorf("parse brief: %w", err)
	}
	return ret, nil
}

func (l *LLM) AnalyzeReferenceImage(ctx context.Context, image []byte) (asset.StyleData, error) {
	var ret asset.StyleData
	p, err := prompt.Style.Render(nil)
	if err != nil {
		return ret, err
	}
	url, mime := DataURL(image)
	msg := &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: p},
			{Type: schema.ChatMessagePartTypeImageURL, ImageURL: &schema.ChatMessageImageURL{URL: url, MIMEType: mime}},
		},
	}
	out, err := l.generate(ctx, l.opts.Vision, []*schema.Message{msg})
	if err != nil {
		return ret, err
	}
	if err := parseJSONReply(out.Content, &ret); err != nil {
		return ret, fmt.Errorf("parse style: %w", err)
	}
	return ret, nil
}

// GenerateImagePrompt composes locally; no model call is needed.
func (l *LLM) GenerateImagePrompt(_ context.Context, brief asset.BriefData, brand asset.Brand, style *asset.StyleData, _ string) (string, error) {
	return ComposePrompt(brief, brand, style), nil
}

func (l *LLM) GenerateImage(ctx context.Context, p string, width, height int) ([]byte, error) {
	if l.opts.Image == nil {
		return Placeholder(p, width, height)
	}
	req, err := prompt.Image.Render(map[string]any{
		"Prompt":      p,
		"WithText":    wantsText(p),
		"AspectRatio": AspectRatio(width, height),
	})
	if err != nil {
		return nil, err
	}
	out, err := l.generate(ctx, l.opts.Image, []*schema.Message{schema.UserMessage(req)})
	if err != nil {
		if l.opts.PlaceholderFallback {
			log.Info("image model failed, using placeholder: %v", err)
			return Placeholder(p, width, height)
		}
		return nil, err
	}
	img := extractImage(out)
	if img == nil {
		if l.opts.PlaceholderFallback {
			log.Info("no image in model reply, using placeholder")
			return Placeholder(p, width, height)
		}
		return nil, nil
	}
	if w, h, err := ImageSize(img); err == nil && (w != width || h != height) {
		return Resize(img, width, height)
	}
	return encodeAsPNG(img)
}

func (l *LLM) ResizeImage(_ context.Context, image []byte, width, height int) ([]byte, error) {
	return Resize(image, width, height)
}

func encodeAsPNG(img []byte) ([]byte, error) {
	w, h, err := ImageSize(img)
	if err != nil {
		return nil, err
	}
	return Resize(img, w, h)
}

// extractImage returns the first image found in a model reply.
func extractImage(msg *schema.Message) []byte {
	if msg == nil {
		return nil
	}
	for _, part := range msg.MultiContent {
		if part.Type == schema.ChatMessagePartTypeImageURL && part.ImageURL != nil {
			if bs := decodeImagePayload(part.ImageURL.URL); bs != nil {
				return bs
			}
		}
	}
	return decodeImagePayload(msg.Content)
}

// parseJSONReply strips markdown fences the models tend to add and decodes
// the JSON object.
func parseJSONReply(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) >= 2 {
			lines = lines[1:]
			if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
				lines = lines[:len(lines)-1]
			}
		}
		text = strings.Join(lines, "\n")
	}
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "json"))
	if i, j := strings.Index(text, "{"), strings.LastIndex(text, "}"); i >= 0 && j > i {
		text = text[i : j+1]
	}
	return json.Unmarshal([]byte(text), v)
}

// generate calls m with retries on transient network errors. Retrying is a
// provider concern: the workflow engine never retries a capability.
func (l *LLM) generate(ctx context.Context, m model.BaseChatModel, msgs []*schema.Message) (*schema.Message, error) {
	var lastErr error
	for attempt := 0; attempt <= l.opts.Retries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<uint(attempt-1)) * time.Second
			if wait > 10*time.Second {
				wait = 10 * time.Second
			}
			log.Info("retrying model call (attempt %d/%d) in %v", attempt+1, l.opts.Retries+1, wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
		out, err := m.Generate(attemptCtx, msgs)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !llm.IsRetryable(err) {
			return nil, err
		}
		log.Info("retryable model error (attempt %d/%d): %v", attempt+1, l.opts.Retries+1, err)
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", l.opts.Retries+1, lastErr)
}
