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

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/llm/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T, opts LocalOptions) *Local {
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	l, err := NewLocal(opts)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLocalCatalog(t *testing.T) {
	l := newLocal(t, LocalOptions{})
	ctx := context.Background()

	clients, err := l.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, asset.Client{ID: "burgers-and-curries", Name: "Burgers & Curries", Description: "Fusion restaurant chain"}, clients[0])

	b, err := l.GetBrandAssets(ctx, "tech-startup-xyz")
	require.NoError(t, err)
	assert.Equal(t, "Tech Startup XYZ", b.Name)
	assert.Equal(t, []string{"#3498DB", "#2ECC71", "#FFFFFF", "#1A1A2E"}, b.Colors)
	assert.Equal(t, "Innovate. Scale. Succeed.", b.Tagline)

	b, err = l.GetBrandAssets(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, asset.FallbackBrand("acme"), b)

	cs, err := l.GetPastCampaigns(ctx, "burgers-and-curries")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "summer-2024", cs[0].ID)
	assert.Len(t, cs[0].Images, 2)
}

func TestLocalBrandsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte(`
clients:
  - id: acme
    name: Acme
    brand:
      colors: ["#FF0000"]
      style: Loud
  - id: tech-startup-xyz
    name: XYZ Renamed
`), 0o644))
	l := newLocal(t, LocalOptions{BrandsDir: dir})
	ctx := context.Background()

	b, err := l.GetBrandAssets(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", b.Name)
	assert.Equal(t, "Loud", b.Style)

	clients, _ := l.ListClients(ctx)
	assert.Len(t, clients, 4)
	assert.Equal(t, "XYZ Renamed", clients[1].Name)

	// an override without a brand block falls back
	b, _ = l.GetBrandAssets(ctx, "tech-startup-xyz")
	assert.Equal(t, "Professional", b.Style)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("clients: [{name: x}]"), 0o644))
	assert.Error(t, l.Reload())
	b, _ = l.GetBrandAssets(ctx, "acme")
	assert.Equal(t, "Loud", b.Style, "failed reload keeps the previous catalog")
}

func TestLocalWatch(t *testing.T) {
	dir := t.TempDir()
	l := newLocal(t, LocalOptions{BrandsDir: dir, Watch: true})
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.yaml"), []byte(`
clients:
  - id: newco
    name: NewCo
    brand: {name: NewCo, style: Fresh}
`), 0o644))

	assert.Eventually(t, func() bool {
		b, _ := l.GetBrandAssets(ctx, "newco")
		return b.Style == "Fresh"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLocalSaveAndDownload(t *testing.T) {
	out := t.TempDir()
	l := newLocal(t, LocalOptions{OutputDir: out})
	ctx := context.Background()

	saved, err := l.SaveImage(ctx, "acme", "summer-sale", "instagram_post", []byte("png"), "summer-sale_20240601_120000.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "acme", "summer-sale", "instagram_post", "summer-sale_20240601_120000.png"), saved.FilePath)
	assert.Equal(t, saved.FilePath, saved.Location())
	require.NoError(t, os.WriteFile(saved.FilePath+".json", []byte("{}"), 0o644))

	cs, err := l.GetPastCampaigns(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "summer-sale", cs[0].ID)
	assert.Equal(t, "instagram_post", cs[0].Platform)
	require.Len(t, cs[0].Images, 1)

	bs, err := l.DownloadReference(ctx, cs[0].Images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), bs)

	_, err = l.DownloadReference(ctx, "../etc/passwd")
	assert.Error(t, err)
	_, err = l.DownloadReference(ctx, "acme/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.SaveImage(ctx, "../x", "c", "p", []byte("png"), "f.png")
	assert.Error(t, err)
}

func TestToolsAndRemote(t *testing.T) {
	l := newLocal(t, LocalOptions{})
	reg, err := NewRegistry(l)
	require.NoError(t, err)
	assert.ElementsMatch(t, tool.StorageTools, reg.Names())

	// Remote over the in-process registry behaves like the local provider.
	r := NewRemote(reg)
	ctx := context.Background()

	clients, err := r.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	b, err := r.GetBrandAssets(ctx, "fashion-brand-abc")
	require.NoError(t, err)
	assert.Equal(t, "Timeless Elegance", b.Tagline)

	saved, err := r.SaveImage(ctx, "acme", "c", "p", []byte{1, 2}, "f.png")
	require.NoError(t, err)
	bs, err := r.DownloadReference(ctx, saved.FileID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, bs)

	_, err = r.SaveImage(ctx, "acme", "c", "p", nil, "f.png")
	assert.Error(t, err)

	res := reg.Invoke(ctx, "get_brand_assets", tool.Params{})
	assert.ErrorIs(t, res.Unwrap(), tool.ErrInvalidParams)
}

type failingInvoker struct{}

func (failingInvoker) Invoke(context.Context, string, tool.Params) tool.Result {
	return tool.Fail(errors.New("connection refused"))
}

func TestRemoteFailure(t *testing.T) {
	_, err := NewRemote(failingInvoker{}).GetBrandAssets(context.Background(), "x")
	assert.EqualError(t, err, "connection refused")
}
