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
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/log"
	"github.com/atcmedia/assetgen/internal/utils"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed brands.yaml
var builtinCatalog []byte

type clientEntry struct {
	asset.Client `yaml:",inline"`
	Brand        *asset.Brand     `yaml:"brand"`
	Campaigns    []asset.Campaign `yaml:"campaigns"`
}

type catalogFile struct {
	Clients []clientEntry `yaml:"clients"`
}

func parseCatalog(data []byte) ([]clientEntry, error) {
	var c catalogFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	for i, e := range c.Clients {
		if e.ID == "" {
			return nil, fmt.Errorf("client #%d has no id", i)
		}
	}
	return c.Clients, nil
}

type LocalOptions struct {
	// OutputDir receives saved images. Defaults to ./generated.
	OutputDir string
	// BrandsDir holds extra *.yaml catalogs overriding the built-in one by
	// client id. Optional.
	BrandsDir string
	// Watch reloads BrandsDir when its files change.
	Watch bool
}

// Local is a filesystem-backed Provider.
type Local struct {
	opts LocalOptions

	mu      sync.RWMutex
	clients map[string]clientEntry
	order   []string

	watcher *fsnotify.Watcher
}

var _ Provider = (*Local)(nil)

func NewLocal(opts LocalOptions) (*Local, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "generated"
	}
	l := &Local{opts: opts}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	if opts.Watch && opts.BrandsDir != "" {
		w, err := utils.WatchDir(opts.BrandsDir, func(op fsnotify.Op, file string) {
			if !isCatalogFile(file) {
				return
			}
			log.Info("brand catalog %s changed (%s), reloading", file, op)
			if err := l.Reload(); err != nil {
				log.Error("reload brand catalog: %v", err)
			}
		})
		if err != nil {
			return nil, utils.WrapError(err, "watch brands dir %s", opts.BrandsDir)
		}
		l.watcher = w
	}
	return l, nil
}

func isCatalogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Reload rebuilds the catalog from the built-in entries and BrandsDir. On
// error the previous catalog stays in place.
func (l *Local) Reload() error {
	entries, err := parseCatalog(builtinCatalog)
	if err != nil {
		return utils.WrapError(err, "parse built-in catalog")
	}
	if l.opts.BrandsDir != "" {
		files, err := os.ReadDir(l.opts.BrandsDir)
		if err != nil && !os.IsNotExist(err) {
			return utils.WrapError(err, "read brands dir")
		}
		for _, f := range files {
			if f.IsDir() || !isCatalogFile(f.Name()) {
				continue
			}
			path := filepath.Join(l.opts.BrandsDir, f.Name())
			bs, err := os.ReadFile(path)
			if err != nil {
				return utils.WrapError(err, "read %s", path)
			}
			more, err := parseCatalog(bs)
			if err != nil {
				return utils.WrapError(err, "parse %s", path)
			}
			entries = append(entries, more...)
		}
	}

	clients := make(map[string]clientEntry, len(entries))
	var order []string
	for _, e := range entries {
		if _, ok := clients[e.ID]; !ok {
			order = append(order, e.ID)
		}
		clients[e.ID] = e
	}

	l.mu.Lock()
	l.clients = clients
	l.order = order
	l.mu.Unlock()
	log.Debug("brand catalog loaded: %d clients", len(order))
	return nil
}

func (l *Local) Close() error {
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}

func (l *Local) ListClients(_ context.Context) ([]asset.Client, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ret := make([]asset.Client, 0, len(l.order))
	for _, id := range l.order {
		ret = append(ret, l.clients[id].Client)
	}
	return ret, nil
}

func (l *Local) GetBrandAssets(_ context.Context, clientID string) (asset.Brand, error) {
	l.mu.RLock()
	e, ok := l.clients[clientID]
	l.mu.RUnlock()
	if !ok || e.Brand == nil {
		return asset.FallbackBrand(clientID), nil
	}
	b := *e.Brand
	if b.Name == "" {
		b.Name = e.Name
	}
	return b, nil
}

// GetPastCampaigns lists catalog campaigns followed by campaigns found in the
// output tree, newest folders last.
func (l *Local) GetPastCampaigns(_ context.Context, clientID string) ([]asset.Campaign, error) {
	l.mu.RLock()
	e := l.clients[clientID]
	l.mu.RUnlock()
	ret := append([]asset.Campaign(nil), e.Campaigns...)

	if clientID == "" || !safeSegment(clientID) {
		return ret, nil
	}
	root := filepath.Join(l.opts.OutputDir, clientID)
	dirs, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return ret, nil
	}
	if err != nil {
		return nil, utils.WrapError(err, "list campaigns of %s", clientID)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		c, err := l.scanCampaign(clientID, d.Name())
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func (l *Local) scanCampaign(clientID, name string) (asset.Campaign, error) {
	c := asset.Campaign{ID: name, Name: name}
	dir := filepath.Join(l.opts.OutputDir, clientID, name)
	if fi, err := os.Stat(dir); err == nil {
		c.Date = fi.ModTime().Format("2006-01-02")
	}
	platforms, err := os.ReadDir(dir)
	if err != nil {
		return c, utils.WrapError(err, "read campaign %s", name)
	}
	for _, p := range platforms {
		if !p.IsDir() {
			continue
		}
		if c.Platform == "" {
			c.Platform = p.Name()
		}
		files, err := os.ReadDir(filepath.Join(dir, p.Name()))
		if err != nil {
			return c, utils.WrapError(err, "read campaign %s", name)
		}
		for _, f := range files {
			if f.IsDir() || !isImageFile(f.Name()) {
				continue
			}
			c.Images = append(c.Images, asset.CampaignImage{
				ID:   filepath.ToSlash(filepath.Join(clientID, name, p.Name(), f.Name())),
				Name: f.Name(),
			})
		}
	}
	sort.Slice(c.Images, func(i, j int) bool { return c.Images[i].ID < c.Images[j].ID })
	return c, nil
}

// isImageFile skips the run reports saved next to images.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return true
	}
	return false
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (l *Local) SaveImage(_ context.Context, clientID, campaign, platform string, image []byte, filename string) (asset.SavedImage, error) {
	for _, seg := range []string{clientID, campaign, platform, filename} {
		if !safeSegment(seg) {
			return asset.SavedImage{}, fmt.Errorf("invalid path segment %q", seg)
		}
	}
	dir := filepath.Join(l.opts.OutputDir, clientID, campaign, platform)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return asset.SavedImage{}, err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return asset.SavedImage{}, err
	}
	log.Debug("saved %d bytes to %s", len(image), path)
	return asset.SavedImage{
		FilePath: path,
		FileID:   filepath.ToSlash(filepath.Join(clientID, campaign, platform, filename)),
	}, nil
}

// DownloadReference reads an image by the id get_past_campaigns reports,
// which is a path relative to the output directory.
func (l *Local) DownloadReference(_ context.Context, fileID string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(fileID))
	if fileID == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("invalid file id %q", fileID)
	}
	bs, err := os.ReadFile(filepath.Join(l.opts.OutputDir, clean))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("reference %s: %w", fileID, ErrNotFound)
	}
	return bs, err
}
