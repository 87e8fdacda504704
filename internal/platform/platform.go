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

// Package platform maps social platform keys to image sizes.
package platform

import (
	"fmt"
	"sort"
)

type Size struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

const DefaultKey = "instagram_post"

var builtin = map[string]Size{
	"instagram_post":  {1080, 1080, "Instagram Post"},
	"instagram_story": {1080, 1920, "Instagram Story"},
	"facebook_post":   {1200, 630, "Facebook Post"},
	"facebook_cover":  {820, 312, "Facebook Cover"},
	"linkedin_post":   {1200, 627, "LinkedIn Post"},
	"twitter_post":    {1200, 675, "Twitter/X Post"},
}

// Table is an immutable platform-to-size lookup with a default entry.
type Table struct {
	sizes      map[string]Size
	defaultKey string
}

// Default is the built-in table.
var Default = MustNewTable(nil, "")

// NewTable builds a table from the built-in sizes plus extra entries, which
// override built-ins of the same key. An empty defaultKey means instagram_post.
func NewTable(extra map[string]Size, defaultKey string) (*Table, error) {
	sizes := make(map[string]Size, len(builtin)+len(extra))
	for k, v := range builtin {
		sizes[k] = v
	}
	for k, v := range extra {
		if v.Width <= 0 || v.Height <= 0 {
			return nil, fmt.Errorf("platform %s: invalid size %s", k, v)
		}
		sizes[k] = v
	}
	if defaultKey == "" {
		defaultKey = DefaultKey
	}
	if _, ok := sizes[defaultKey]; !ok {
		return nil, fmt.Errorf("default platform %s is not defined", defaultKey)
	}
	return &Table{sizes: sizes, defaultKey: defaultKey}, nil
}

func MustNewTable(extra map[string]Size, defaultKey string) *Table {
	t, err := NewTable(extra, defaultKey)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve never fails: unknown keys resolve to the default entry.
func (t *Table) Resolve(key string) Size {
	if s, ok := t.sizes[key]; ok {
		return s
	}
	return t.sizes[t.defaultKey]
}

// Lookup reports whether key is a known platform.
func (t *Table) Lookup(key string) (Size, bool) {
	s, ok := t.sizes[key]
	return s, ok
}

func (t *Table) DefaultKey() string { return t.defaultKey }

func (t *Table) Keys() []string {
	ret := make([]string, 0, len(t.sizes))
	for k := range t.sizes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Resolve looks key up in the built-in table.
func Resolve(key string) Size { return Default.Resolve(key) }
