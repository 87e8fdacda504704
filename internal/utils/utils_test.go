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

package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Summer Sale":          "summer-sale",
		"  Diwali  2024!  ":    "diwali-2024",
		"Burgers & Curries":    "burgers-curries",
		"already-slugged":      "already-slugged",
		"":                     "",
		"Crème Brûlée Weekend": "crème-brûlée-weekend",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	base := errors.New("disk full")
	err := WrapError(base, "save %s", "x.png")
	require.Error(t, err)
	assert.Equal(t, "save x.png: disk full", err.Error())
	assert.Equal(t, base, Cause(err))
	assert.ErrorIs(t, err, base)
}

func TestMarshalJSONIndent(t *testing.T) {
	out, err := MarshalJSONIndent(map[string]string{"name": "Burgers & Curries"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Burgers & Curries\"\n}", out)
}

func TestWatchDir(t *testing.T) {
	dir := t.TempDir()
	events := make(chan string, 8)
	w, err := WatchDir(dir, func(op fsnotify.Op, file string) {
		if op&fsnotify.Create != 0 || op&fsnotify.Write != 0 {
			events <- filepath.Base(file)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte("name: Acme\n"), 0644))
	select {
	case name := <-events:
		assert.Equal(t, "acme.yaml", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}
