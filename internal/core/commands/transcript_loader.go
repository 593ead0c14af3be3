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

// This file defines the command that turns the downloaded transcript JSON
// into a model.Transcript. The speech recognizer emits either a wrapped
// document ({"segments": [...]}) or a bare segment array; both are accepted.
// Segments with no spoken text are dropped here so later stages never see
// them.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// TranscriptLoader reads a whisper-style segment JSON file from the path in
// its input parameter and publishes the parsed transcript.
type TranscriptLoader struct {
	cor.BaseCommand
}

// NewTranscriptLoader is the constructor for the TranscriptLoader command.
func NewTranscriptLoader(name string) *TranscriptLoader {
	return &TranscriptLoader{BaseCommand: *cor.NewBaseCommand(name)}
}

// transcriptDocument matches the wrapped form of the recognizer output.
type transcriptDocument struct {
	Segments []*model.CaptionSegment `json:"segments"`
}

// Execute parses the transcript file and stores the result under the shared
// transcript key and the output parameter.
func (c *TranscriptLoader) Execute(context cor.Context) {
	path := context.Get(c.GetInputParam()).(string)

	data, err := os.ReadFile(path)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to read transcript file %s: %w", path, err))
		return
	}

	segments, err := parseTranscript(data)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to parse transcript %s: %w", path, err))
		return
	}
	if len(segments) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("transcript %s contains no usable segments", path))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetTranscriptParameterName(), segments)
	context.Add(c.GetOutputParam(), segments)
}

// parseTranscript accepts both the wrapped and the bare-array transcript
// forms and filters out segments with empty text.
func parseTranscript(data []byte) (model.Transcript, error) {
	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil || doc.Segments == nil {
		var bare []*model.CaptionSegment
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, err
		}
		doc.Segments = bare
	}

	out := make(model.Transcript, 0, len(doc.Segments))
	for _, s := range doc.Segments {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
