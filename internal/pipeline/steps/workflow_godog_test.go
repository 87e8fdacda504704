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

package steps

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/llm/tool"
	"github.com/cucumber/godog"
)

// TestWorkflowScenarios runs the workflow feature scenarios.
func TestWorkflowScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name: "workflow",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			initializeWorkflowScenario(t, sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("features", "workflow.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// workflowState holds scenario state.
type workflowState struct {
	t        *testing.T
	fx       *fixture
	clientID string
	brief    string
	platform string
	ref      []byte
	result   *pipeline.RunState
}

func initializeWorkflowScenario(t *testing.T, sc *godog.ScenarioContext) {
	s := &workflowState{t: t}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = workflowState{t: t, fx: newFixture(t)}
		return ctx, nil
	})

	sc.Step(`^a client "([^"]*)" with brief "([^"]*)"$`, s.givenClientBrief)
	sc.Step(`^the target platform "([^"]*)"$`, s.givenPlatform)
	sc.Step(`^a reference image$`, s.givenReferenceImage)
	sc.Step(`^"([^"]*)" fails with "([^"]*)"$`, s.givenToolFails)
	sc.Step(`^saving fails with "([^"]*)"$`, s.givenSaveFails)
	sc.Step(`^image generation returns an empty image$`, s.givenEmptyImage)
	sc.Step(`^the workflow runs$`, s.whenRun)
	sc.Step(`^the run succeeds$`, s.thenSucceeds)
	sc.Step(`^the run fails with "([^"]*)"$`, s.thenFailsWith)
	sc.Step(`^the messages contain "([^"]*)"$`, s.thenMessagesContain)
	sc.Step(`^there are (\d+) messages$`, s.thenMessageCount)
	sc.Step(`^the image was saved$`, s.thenSaved)
	sc.Step(`^the image was not saved$`, s.thenNotSaved)
	sc.Step(`^an image was generated$`, s.thenImageGenerated)
	sc.Step(`^the image size is (\d+)x(\d+)$`, s.thenSize)
	sc.Step(`^no brand data was retrieved$`, s.thenNoBrand)
	sc.Step(`^no style data was extracted$`, s.thenNoStyle)
}

func (s *workflowState) givenClientBrief(client, brief string) error {
	s.clientID, s.brief = client, brief
	return nil
}

func (s *workflowState) givenPlatform(p string) error {
	s.platform = p
	return nil
}

func (s *workflowState) givenReferenceImage() error {
	s.ref = []byte("reference image bytes")
	return nil
}

func (s *workflowState) givenToolFails(name, msg string) error {
	s.fx.content.FailOn(tool.Name(name), errors.New(msg))
	return nil
}

func (s *workflowState) givenSaveFails(msg string) error {
	s.fx.storage.saveErr = errors.New(msg)
	return nil
}

func (s *workflowState) givenEmptyImage() error {
	s.fx.content.EmptyImage()
	return nil
}

func (s *workflowState) whenRun() error {
	s.result = s.fx.engine.Run(context.Background(), s.clientID, s.brief, s.platform, s.ref)
	return nil
}

func (s *workflowState) thenSucceeds() error {
	if !s.result.Succeeded() {
		return fmt.Errorf("run failed: %s", s.result.Error)
	}
	return nil
}

func (s *workflowState) thenFailsWith(msg string) error {
	if s.result.Error != msg {
		return fmt.Errorf("error = %q, want %q", s.result.Error, msg)
	}
	return nil
}

func (s *workflowState) thenMessagesContain(msg string) error {
	if !slices.Contains(s.result.Messages(), msg) {
		return fmt.Errorf("messages %q do not contain %q", s.result.Messages(), msg)
	}
	return nil
}

func (s *workflowState) thenMessageCount(n int) error {
	if got := len(s.result.Messages()); got != n {
		return fmt.Errorf("got %d messages, want %d", got, n)
	}
	return nil
}

func (s *workflowState) thenSaved() error {
	if s.result.SavedPath == "" {
		return errors.New("image was not saved")
	}
	return nil
}

func (s *workflowState) thenNotSaved() error {
	if s.result.SavedPath != "" {
		return fmt.Errorf("image saved to %s", s.result.SavedPath)
	}
	return nil
}

func (s *workflowState) thenImageGenerated() error {
	if len(s.result.GeneratedImage) == 0 {
		return errors.New("no image generated")
	}
	return nil
}

func (s *workflowState) thenSize(w, h int) error {
	if s.result.Size.Width != w || s.result.Size.Height != h {
		return fmt.Errorf("size = %s, want %dx%d", s.result.Size, w, h)
	}
	return nil
}

func (s *workflowState) thenNoBrand() error {
	if s.result.BrandData != nil {
		return errors.New("brand data present")
	}
	return nil
}

func (s *workflowState) thenNoStyle() error {
	if s.result.StyleData != nil {
		return errors.New("style data present")
	}
	return nil
}
