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

package commands

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// newTriggerContext seeds a chain context with a raw trigger payload the way
// the Pub/Sub listener does.
func newTriggerContext(payload string) cor.Context {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, payload)
	return chainCtx
}

// TestJobTriggerReaderSeedsContext verifies a valid assembly trigger creates
// the workspace and publishes the request, workspace path, and both GCS
// references under their well-known keys.
func TestJobTriggerReaderSeedsContext(t *testing.T) {
	root := t.TempDir()
	reader := NewJobTriggerReader("read-job-trigger", root)
	chainCtx := newTriggerContext(`{
		"id": "job-001",
		"topic": "budgeting",
		"search_terms": ["piggy bank"],
		"audio_bucket": "in-bucket",
		"audio_object": "narration/job-001.mp3",
		"transcript_bucket": "in-bucket",
		"transcript_object": "transcripts/job-001.json",
		"duration_seconds": 30
	}`)

	reader.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())

	req, ok := chainCtx.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)
	assert.True(t, ok)
	assert.Equal(t, "job-001", req.ID)

	workspace, ok := chainCtx.Get(GetWorkspaceParameterName()).(string)
	assert.True(t, ok)
	info, err := os.Stat(workspace)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	audio, ok := chainCtx.Get(GetAudioObjectParameterName()).(*cloud.GCSObject)
	assert.True(t, ok)
	assert.Equal(t, "in-bucket", audio.Bucket)
	assert.Equal(t, "narration/job-001.mp3", audio.Name)

	transcript, ok := chainCtx.Get(GetTranscriptObjectParameterName()).(*cloud.GCSObject)
	assert.True(t, ok)
	assert.Equal(t, "transcripts/job-001.json", transcript.Name)
}

// TestJobTriggerReaderRequiresID verifies a trigger without an id is rejected.
func TestJobTriggerReaderRequiresID(t *testing.T) {
	reader := NewJobTriggerReader("read-job-trigger", t.TempDir())
	chainCtx := newTriggerContext(`{"topic": "budgeting"}`)

	reader.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(GetWorkspaceParameterName()))
}

// TestJobTriggerReaderRequiresMediaReferences verifies the assembly-side
// reader rejects a trigger that names no narration or transcript objects.
func TestJobTriggerReaderRequiresMediaReferences(t *testing.T) {
	reader := NewJobTriggerReader("read-job-trigger", t.TempDir())
	chainCtx := newTriggerContext(`{"id": "job-002", "topic": "budgeting"}`)

	reader.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}

// TestJobTriggerReaderRejectsMalformedPayload verifies non-JSON input records
// an error instead of panicking the chain.
func TestJobTriggerReaderRejectsMalformedPayload(t *testing.T) {
	reader := NewJobTriggerReader("read-job-trigger", t.TempDir())
	chainCtx := newTriggerContext("not json at all")

	reader.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}

// TestPrefetchTriggerReaderAcceptsBareRequest verifies the prefetch-side
// reader accepts a trigger carrying only an id and search terms, and does not
// seed media reference keys it has no values for.
func TestPrefetchTriggerReaderAcceptsBareRequest(t *testing.T) {
	reader := NewPrefetchTriggerReader("read-prefetch-trigger", t.TempDir())
	chainCtx := newTriggerContext(`{"id": "prefetch-001", "topic": "city nightlife", "search_terms": ["neon street"]}`)

	reader.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	assert.NotNil(t, chainCtx.Get(GetWorkspaceParameterName()))
	assert.Nil(t, chainCtx.Get(GetAudioObjectParameterName()))
	assert.Nil(t, chainCtx.Get(GetTranscriptObjectParameterName()))
}
