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

package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/atcmedia/assetgen/internal/log"
	abutil "github.com/atcmedia/assetgen/internal/utils"
	etool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	vschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Params are the named arguments of one invocation.
type Params map[string]any

// Invoker is the single call shape every capability is reached through.
type Invoker interface {
	Invoke(ctx context.Context, name string, params Params) Result
}

// Tool binds a descriptor to a strongly-typed handler.
type Tool struct {
	Descriptor
	schema    json.RawMessage
	validator *vschema.Schema
	call      func(ctx context.Context, raw []byte) (any, error)
	eino      func() (etool.InvokableTool, error)
}

// Schema returns the JSON schema of the tool's parameters.
func (t Tool) Schema() json.RawMessage { return t.schema }

// NewTool builds a Tool from a handler taking the request struct R. The
// parameter schema is reflected from R, so json tags define parameter names
// and `omitempty` marks a parameter optional.
func NewTool[R any, T any](name Name, desc string, handler func(ctx context.Context, req R) (T, error)) Tool {
	var zero R
	raw := GetJSONSchema(zero)
	return Tool{
		Descriptor: Descriptor{
			Name:        name,
			Description: desc,
			Parameters:  paramSpecs(zero),
		},
		schema:    raw,
		validator: compileSchema(name, raw),
		call: func(ctx context.Context, bs []byte) (any, error) {
			var req R
			if err := json.Unmarshal(bs, &req); err != nil {
				return nil, fmt.Errorf("%w for %s: %v", ErrInvalidParams, name, err)
			}
			return handler(ctx, req)
		},
		eino: func() (etool.InvokableTool, error) {
			// failures go back to the model as a result instead of aborting the agent run
			return utils.InferTool(string(name), desc, func(ctx context.Context, req R) (res Result, err error) {
				defer func() {
					if p := recover(); p != nil {
						res = Fail(fmt.Errorf("panic in tool %s: %v", name, p))
					}
				}()
				out, err := handler(ctx, req)
				if err != nil {
					return Fail(err), nil
				}
				return OK(out), nil
			}, utils.WithMarshalOutput(func(ctx context.Context, output interface{}) (string, error) {
				return abutil.MarshalJSONIndent(output)
			}))
		},
	}
}

// Registry maps tool names to tools. It is built once and never modified,
// so Invoke is safe for concurrent use.
type Registry struct {
	tools map[Name]Tool
}

var _ Invoker = (*Registry)(nil)

func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[Name]Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" || t.call == nil {
			return nil, fmt.Errorf("tool %q is not constructed with NewTool", t.Name)
		}
		if _, ok := r.tools[t.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
		}
		r.tools[t.Name] = t
	}
	return r, nil
}

// Merge builds one dispatch table from several registries.
func Merge(regs ...*Registry) (*Registry, error) {
	var all []Tool
	for _, r := range regs {
		if r == nil {
			continue
		}
		for _, n := range r.Names() {
			all = append(all, r.tools[n])
		}
	}
	return NewRegistry(all...)
}

// Invoke runs the named tool. It never panics and never returns an error
// value: every failure, including an unknown name, invalid parameters, a
// handler error or a handler panic, is reported in the Result.
func (r *Registry) Invoke(ctx context.Context, name string, params Params) (res Result) {
	t, ok := r.tools[Name(name)]
	if !ok {
		return Fail(&UnknownToolError{Name: name})
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("tool %s panicked: %v", name, p)
			res = Fail(fmt.Errorf("panic in tool %s: %v", name, p))
		}
	}()

	raw, err := encodeParams(params)
	if err != nil {
		return Fail(fmt.Errorf("%w for %s: %v", ErrInvalidParams, name, err))
	}
	if err := validateRaw(t.validator, raw); err != nil {
		return Fail(fmt.Errorf("%w for %s: %v", ErrInvalidParams, name, err))
	}

	log.Debug("invoke tool %s", name)
	out, err := t.call(ctx, raw)
	if err != nil {
		log.Debug("tool %s failed: %v", name, err)
		return Fail(err)
	}
	return OK(out)
}

func (r *Registry) Lookup(name Name) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []Name {
	ret := make([]Name, 0, len(r.tools))
	for n := range r.tools {
		ret = append(ret, n)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Descriptors returns metadata of all tools sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	names := r.Names()
	ret := make([]Descriptor, 0, len(names))
	for _, n := range names {
		ret = append(ret, r.tools[n].Descriptor)
	}
	return ret
}

// EinoTools adapts the named tools for an eino agent. With no names, every
// tool is adapted.
func (r *Registry) EinoTools(names ...Name) ([]etool.BaseTool, error) {
	if len(names) == 0 {
		names = r.Names()
	}
	ret := make([]etool.BaseTool, 0, len(names))
	for _, n := range names {
		t, ok := r.tools[n]
		if !ok {
			return nil, &UnknownToolError{Name: string(n)}
		}
		it, err := t.eino()
		if err != nil {
			return nil, fmt.Errorf("adapt tool %s: %w", n, err)
		}
		ret = append(ret, it)
	}
	return ret, nil
}
