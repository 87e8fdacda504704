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

package pipeline

import "context"

// Stage is one step of the fixed workflow. Run reads its inputs from st and
// writes its outputs back; failures are reported through the result, never
// by panicking.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *RunState) *StageResult
}

type StageResult struct {
	Status StageStatus
	// Recoverable failures are logged and the run continues.
	Recoverable bool
	// Err becomes RunState.Error when the failure aborts the run.
	Err error
	// Message is appended to the run's trail when the stage fails.
	Message string
}

func OK() *StageResult { return &StageResult{Status: StageOK} }

func Skipped() *StageResult { return &StageResult{Status: StageSkipped} }

// Fatal reports a failure that ends the run.
func Fatal(err error, msg string) *StageResult {
	return &StageResult{Status: StageFailed, Err: err, Message: msg}
}

// Degraded reports a failure the run continues past.
func Degraded(err error, msg string) *StageResult {
	return &StageResult{Status: StageFailed, Recoverable: true, Err: err, Message: msg}
}
