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
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"net/http"
	"strings"
)

var (
	placeholderBG     = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	placeholderBar    = color.RGBA{0x16, 0x21, 0x3e, 0xff}
	placeholderAccent = color.RGBA{0xe9, 0x45, 0x60, 0xff}
)

// Placeholder renders a stand-in PNG of the requested size, used when no
// image model is available or the model returned no image. The prompt seeds
// the accent stripe so different prompts give visibly different images.
func Placeholder(prompt string, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{placeholderBG}, image.Point{}, draw.Src)

	header := min(120, height/4)
	footer := min(80, height/5)
	draw.Draw(img, image.Rect(0, 0, width, header), &image.Uniform{placeholderBar}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, height-footer, width, height), &image.Uniform{placeholderBar}, image.Point{}, draw.Src)

	var seed uint32
	for _, r := range prompt {
		seed = seed*31 + uint32(r)
	}
	stripe := int(seed % uint32(max(1, width-40)))
	draw.Draw(img, image.Rect(stripe, header-6, min(width, stripe+40), header), &image.Uniform{placeholderAccent}, image.Point{}, draw.Src)

	cx, cy := width/2, height/2
	for i, radius := range []int{200, 180, 160} {
		a := uint8(30 + i*20)
		ring(img, cx, cy, radius, color.RGBA{a, a, a + 30, 0xff})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ring(img *image.RGBA, cx, cy, r int, c color.Color) {
	steps := int(2 * math.Pi * float64(r))
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(r)
		x := cx + int(math.Round(float64(r)*math.Cos(t)))
		y := cy + int(math.Round(float64(r)*math.Sin(t)))
		img.Set(x, y, c)
		img.Set(x+1, y, c)
	}
}

// Resize scales an image to width x height and re-encodes it as PNG.
func Resize(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	sb := src.Bounds()
	if sb.Dx() == width && sb.Dy() == height {
		return encodePNG(src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		sy := sb.Min.Y + y*sb.Dy()/height
		for x := 0; x < width; x++ {
			sx := sb.Min.X + x*sb.Dx()/width
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return encodePNG(dst)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImageSize returns the pixel size of an encoded image.
func ImageSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// AspectRatio maps a size to the nearest ratio image models accept.
func AspectRatio(width, height int) string {
	if height <= 0 {
		return "1:1"
	}
	r := float64(width) / float64(height)
	switch {
	case math.Abs(r-1) < 0.1:
		return "1:1"
	case r > 1.7:
		return "16:9"
	case r < 0.6:
		return "9:16"
	case r > 1.2:
		return "4:3"
	case r < 0.8:
		return "3:4"
	default:
		return "1:1"
	}
}

// DataURL encodes bytes as a data URL with a sniffed mime type.
func DataURL(data []byte) (string, string) {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), mime
}

// decodeImagePayload accepts a data URL, plain base64 or raw image bytes and
// returns raw bytes if they decode as an image.
func decodeImagePayload(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	var candidates [][]byte
	if bs, err := base64.StdEncoding.DecodeString(s); err == nil {
		candidates = append(candidates, bs)
	}
	candidates = append(candidates, []byte(s))
	for _, bs := range candidates {
		if _, _, err := image.DecodeConfig(bytes.NewReader(bs)); err == nil {
			return bs
		}
	}
	return nil
}
