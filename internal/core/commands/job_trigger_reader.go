// Copyright 2025 ReelComp Authors
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

// This file defines the entry command for every workflow triggered off the
// render topic.
//
// Logic Flow:
//  1. The command receives the raw Pub/Sub payload as a JSON string from the
//     context (seeded there by the listener).
//  2. It unmarshals the payload into a model.ShortsJobRequest and validates
//     the fields every later command depends on.
//  3. It creates the job's scratch workspace directory.
//  4. It publishes the request, the workspace path, and the GCS references of
//     the narration audio and the transcript under well-known context keys so
//     downstream commands can pick out exactly the piece they need.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// JobTriggerReader parses a shorts job request message and prepares the
// workspace for the rest of the chain.
type JobTriggerReader struct {
	cor.BaseCommand
	workspaceRoot string // parent directory for job workspaces; empty means the OS temp dir
	requireMedia  bool   // assembly jobs must reference narration audio and a transcript
}

// NewJobTriggerReader is the constructor for the assembly-side trigger
// reader, which requires the narration and transcript references.
func NewJobTriggerReader(name string, workspaceRoot string) *JobTriggerReader {
	return &JobTriggerReader{BaseCommand: *cor.NewBaseCommand(name), workspaceRoot: workspaceRoot, requireMedia: true}
}

// NewPrefetchTriggerReader is the constructor for the prefetch-side trigger
// reader. Prefetch requests only name a topic and search terms; the media
// references arrive later with the assembly job.
func NewPrefetchTriggerReader(name string, workspaceRoot string) *JobTriggerReader {
	return &JobTriggerReader{BaseCommand: *cor.NewBaseCommand(name), workspaceRoot: workspaceRoot}
}

// Execute decodes the trigger payload and seeds the shared context keys.
func (c *JobTriggerReader) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)

	var req model.ShortsJobRequest
	if err := json.Unmarshal([]byte(in), &req); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to unmarshal job request: %w", err))
		return
	}

	if req.ID == "" {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("job request is missing an id"))
		return
	}
	if c.requireMedia && (req.AudioBucket == "" || req.AudioObject == "" ||
		req.TranscriptBucket == "" || req.TranscriptObject == "") {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("job request %q is missing media references", req.ID))
		return
	}

	root := c.workspaceRoot
	if root == "" {
		root = os.TempDir()
	}
	workspace := filepath.Join(root, fmt.Sprintf("shorts-%s", req.ID))
	if err := os.MkdirAll(workspace, 0o750); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to create workspace for job %s: %w", req.ID, err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)

	context.Add(GetJobRequestParameterName(), &req)
	context.Add(GetWorkspaceParameterName(), workspace)
	if c.requireMedia {
		context.Add(GetAudioObjectParameterName(), &cloud.GCSObject{Bucket: req.AudioBucket, Name: req.AudioObject})
		context.Add(GetTranscriptObjectParameterName(), &cloud.GCSObject{Bucket: req.TranscriptBucket, Name: req.TranscriptObject})
	}
	context.Add(c.GetOutputParam(), &req)
}
