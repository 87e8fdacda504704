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
	"errors"
	"fmt"
	"time"

	"github.com/atcmedia/assetgen/internal/log"
)

// Engine runs stages in order over one RunState.
type Engine struct {
	Stages []Stage
	Policy Policy
	// Now is the clock used for history records.
	Now func() time.Time
}

// Run executes a fresh run. It never returns nil and never panics because of
// a stage: failures end up in the returned state.
func (e *Engine) Run(ctx context.Context, clientID, brief, platformKey string, reference []byte) *RunState {
	st := NewRunState(clientID, brief, platformKey, reference)
	e.Execute(ctx, st)
	return st
}

// Execute runs the stages over an existing state, stopping at the first
// aborting failure.
func (e *Engine) Execute(ctx context.Context, st *RunState) {
	log.Info("run %s: client=%s platform=%s", st.RunID, st.ClientID, st.Platform)
	for _, stage := range e.Stages {
		if !st.Succeeded() {
			return
		}
		if !e.runStage(ctx, stage, st) {
			log.Error("run %s aborted at %s: %s", st.RunID, stage.Name(), st.Error)
			return
		}
	}
	log.Info("run %s finished", st.RunID)
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// runStage reports whether the run may continue.
func (e *Engine) runStage(ctx context.Context, stage Stage, st *RunState) bool {
	rec := StageRecord{Stage: stage.Name(), StartedAt: e.now()}
	log.Debug("run %s: stage %s", st.RunID, stage.Name())

	result := safeRun(ctx, stage, st)
	if result.Status == StageFailed && result.Err == nil {
		result.Err = fmt.Errorf("stage %s failed", stage.Name())
	}
	rec.EndedAt = e.now()
	rec.Status = result.Status
	rec.Error = errStr(result.Err)
	st.History = append(st.History, rec)

	if result.Status != StageFailed {
		return true
	}

	policy := e.Policy
	if policy == nil {
		policy = DefaultPolicy{}
	}
	switch policy.OnStageFailure(ctx, stage, st, result) {
	case DecisionContinue:
		if result.Message != "" {
			st.Log(result.Message)
		}
		log.Debug("run %s: stage %s degraded: %v", st.RunID, stage.Name(), result.Err)
		return true
	default:
		st.Error = result.Err.Error()
		if result.Message != "" {
			st.Log(result.Message)
		}
		return false
	}
}

func safeRun(ctx context.Context, stage Stage, st *RunState) (res *StageResult) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("stage %s panicked: %v", stage.Name(), p)
			res = Fatal(err, "Error: "+err.Error())
		}
	}()
	res = stage.Run(ctx, st)
	if res == nil {
		err := errors.New("stage " + stage.Name() + " returned no result")
		res = Fatal(err, "Error: "+err.Error())
	}
	return res
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
