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

// Package steps implements the six stages of the asset workflow on top of
// the capability registry.
package steps

import (
	"time"

	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/atcmedia/assetgen/llm/tool"
)

type Options struct {
	// Platforms resolves platform keys to sizes. Defaults to platform.Default.
	Platforms *platform.Table
	// Now stamps saved filenames. Defaults to time.Now.
	Now    func() time.Time
	Policy pipeline.Policy
}

func (o *Options) fill() {
	if o.Platforms == nil {
		o.Platforms = platform.Default
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Policy == nil {
		o.Policy = pipeline.DefaultPolicy{}
	}
}

// Stages returns the workflow in its fixed order.
func Stages(inv tool.Invoker, opts Options) []pipeline.Stage {
	opts.fill()
	return []pipeline.Stage{
		&BriefStep{inv: inv},
		&BrandStep{inv: inv},
		&ReferenceStep{inv: inv},
		&PromptStep{inv: inv},
		&ImageStep{inv: inv, platforms: opts.Platforms},
		&SaveStep{inv: inv, platforms: opts.Platforms, now: opts.Now},
	}
}

// NewEngine wires the workflow to the given capabilities. Content and storage
// tools are expected behind the same Invoker, see tool.Merge.
func NewEngine(inv tool.Invoker, opts Options) *pipeline.Engine {
	opts.fill()
	return &pipeline.Engine{
		Stages: Stages(inv, opts),
		Policy: opts.Policy,
		Now:    opts.Now,
	}
}

// stageError prefixes a capability failure with what the stage was doing.
type stageError struct {
	what string
	err  error
}

func (e *stageError) Error() string { return e.what + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func failure(what string, err error) error {
	return &stageError{what: what, err: err}
}
