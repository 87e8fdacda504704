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

import (
	"context"
)

// Policy decides what a failed stage means for the run.
type Policy interface {
	OnStageFailure(ctx context.Context, stage Stage, st *RunState, result *StageResult) Decision
}

type Decision string

const (
	DecisionContinue Decision = "continue"
	DecisionAbort    Decision = "abort"
)

// DefaultPolicy aborts on unrecoverable failures and continues otherwise.
// It never retries: retrying is left to the capabilities themselves.
type DefaultPolicy struct{}

func (DefaultPolicy) OnStageFailure(_ context.Context, _ Stage, _ *RunState, result *StageResult) Decision {
	if result == nil || !result.Recoverable {
		return DecisionAbort
	}
	return DecisionContinue
}
