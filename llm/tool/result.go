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
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidParams = errors.New("invalid parameters")
	ErrDuplicateTool = errors.New("duplicate tool")
	ErrToolFailed    = errors.New("tool failed")
)

// UnknownToolError is returned (inside a failed Result) for names that are
// not in the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool: " + e.Name
}

// Result is the outcome of one capability invocation.
// Success is false if and only if Error is non-empty.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Err keeps the typed failure for errors.Is / errors.As; it is not serialized.
	Err error `json:"-"`
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

func Fail(err error) Result {
	if err == nil {
		err = ErrToolFailed
	}
	msg := err.Error()
	if msg == "" {
		err = ErrToolFailed
		msg = err.Error()
	}
	return Result{Success: false, Error: msg, Err: err}
}

// Unwrap returns the failure as an error, or nil for a successful result.
func (r Result) Unwrap() error {
	if r.Success {
		return nil
	}
	if r.Err != nil {
		return r.Err
	}
	return errors.New(r.Error)
}

// Decode converts the opaque Data of a successful result into T. A direct
// type match is returned as-is; anything else goes through a JSON round trip,
// which is how results coming back from a remote transport look.
func Decode[T any](r Result) (T, error) {
	var zero T
	if !r.Success {
		return zero, r.Unwrap()
	}
	if v, ok := r.Data.(T); ok {
		return v, nil
	}
	if r.Data == nil {
		return zero, nil
	}
	bs, err := json.Marshal(r.Data)
	if err != nil {
		return zero, fmt.Errorf("encode result: %w", err)
	}
	var out T
	if err := json.Unmarshal(bs, &out); err != nil {
		return zero, fmt.Errorf("decode result as %T: %w", out, err)
	}
	return out, nil
}
