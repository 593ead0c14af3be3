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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// TestParseTranscriptWrapped verifies the wrapped {"segments": [...]} form
// produced by the speech recognizer is accepted.
func TestParseTranscriptWrapped(t *testing.T) {
	data := []byte(`{"segments": [
		{"text": "hello", "start": 0.0, "end": 0.5},
		{"text": "world", "start": 0.5, "end": 1.0}
	]}`)

	out, err := parseTranscript(data)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "hello", out[0].Text)
	assert.Equal(t, 1.0, out[1].End)
}

// TestParseTranscriptBareArray verifies a bare segment array is accepted too.
func TestParseTranscriptBareArray(t *testing.T) {
	data := []byte(`[{"text": "solo", "start": 1.0, "end": 2.0}]`)

	out, err := parseTranscript(data)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "solo", out[0].Text)
}

// TestParseTranscriptDropsEmptyText verifies segments with no spoken text are
// filtered out before later stages can see them.
func TestParseTranscriptDropsEmptyText(t *testing.T) {
	data := []byte(`{"segments": [
		{"text": "keep", "start": 0.0, "end": 0.5},
		{"text": "   ", "start": 0.5, "end": 0.7},
		{"text": "", "start": 0.7, "end": 0.9}
	]}`)

	out, err := parseTranscript(data)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].Text)
}

// TestParseTranscriptRejectsGarbage verifies non-JSON input surfaces an error
// instead of an empty transcript.
func TestParseTranscriptRejectsGarbage(t *testing.T) {
	_, err := parseTranscript([]byte("not a transcript"))
	assert.Error(t, err)
}

// TestTranscriptLoaderExecute runs the command against a real file on disk and
// checks that the parsed transcript lands under both the shared transcript key
// and the chain output.
func TestTranscriptLoaderExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	err := os.WriteFile(path, []byte(`{"segments": [{"text": "hi", "start": 0, "end": 1}]}`), 0o640)
	assert.NoError(t, err)

	loader := NewTranscriptLoader("load-transcript")
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, path)

	loader.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	transcript, ok := chainCtx.Get(GetTranscriptParameterName()).(model.Transcript)
	assert.True(t, ok)
	assert.Len(t, transcript, 1)
	assert.Equal(t, "hi", transcript[0].Text)
}

// TestTranscriptLoaderRejectsEmptyTranscript verifies a transcript whose
// segments are all empty records an error rather than feeding an empty
// transcript to the caption pipeline.
func TestTranscriptLoaderRejectsEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	err := os.WriteFile(path, []byte(`{"segments": [{"text": " ", "start": 0, "end": 1}]}`), 0o640)
	assert.NoError(t, err)

	loader := NewTranscriptLoader("load-transcript")
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, path)

	loader.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}
