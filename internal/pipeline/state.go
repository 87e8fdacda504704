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
	"time"

	"github.com/atcmedia/assetgen/internal/asset"
	"github.com/atcmedia/assetgen/internal/platform"
	"github.com/google/uuid"
)

const SeedMessage = "Starting marketing asset generation workflow"

// RunState is the record one run threads through the stages. It is owned by
// a single run and is not safe for concurrent use.
type RunState struct {
	RunID string

	// inputs, fixed at creation
	ClientID       string
	Brief          string
	Platform       string
	ReferenceImage []byte

	BriefData      *asset.BriefData
	BrandData      *asset.Brand
	StyleData      *asset.StyleData
	ImagePrompt    string
	Size           platform.Size
	GeneratedImage []byte
	ImageDigest    string
	SavedPath      string

	// Error is the first fatal failure. Once set, no stage runs.
	Error string

	messages []string
	History  []StageRecord
}

func NewRunState(clientID, brief, platformKey string, reference []byte) *RunState {
	return &RunState{
		RunID:          uuid.NewString(),
		ClientID:       clientID,
		Brief:          brief,
		Platform:       platformKey,
		ReferenceImage: reference,
		messages:       []string{SeedMessage},
	}
}

// Log appends a line to the run's message trail. Lines are never removed.
func (st *RunState) Log(msg string) {
	st.messages = append(st.messages, msg)
}

// Messages returns a copy of the message trail in execution order.
func (st *RunState) Messages() []string {
	return append([]string(nil), st.messages...)
}

func (st *RunState) Succeeded() bool {
	return st.Error == ""
}

type StageRecord struct {
	Stage     string      `json:"stage"`
	Status    StageStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
}

type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)
