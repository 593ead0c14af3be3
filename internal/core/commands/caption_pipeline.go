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

// This file defines the command that runs the caption pipeline over the
// parsed transcript. The heavy lifting lives in the captions package; the
// command's job is to feed it the clamped media duration and the configured
// frame geometry, and to publish the resulting overlays for the compositor.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// CaptionPipeline is the command wrapper around captions.Pipeline.
type CaptionPipeline struct {
	cor.BaseCommand
	pipeline *captions.Pipeline
	config   *cloud.Config
}

// NewCaptionPipeline builds the pipeline from configuration. Thresholds and
// the animation pool come from config so operators can tune them without a
// rebuild.
func NewCaptionPipeline(name string, config *cloud.Config) *CaptionPipeline {
	pipeline := captions.NewPipeline(captions.PipelineOptions{
		FillerThreshold: config.Captions.FillerThreshold,
		SplitThreshold:  config.Captions.SplitThreshold,
		FullVariantSet:  config.Captions.FullVariantSet,
	})
	return &CaptionPipeline{
		BaseCommand: *cor.NewBaseCommand(name),
		pipeline:    pipeline,
		config:      config,
	}
}

// IsExecutable requires the parsed transcript and the job request.
func (c *CaptionPipeline) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(c.GetInputParam()) != nil &&
		context.Get(GetJobRequestParameterName()) != nil
}

// Execute builds the caption overlays for the job.
func (c *CaptionPipeline) Execute(context cor.Context) {
	transcript := context.Get(c.GetInputParam()).(model.Transcript)
	req := context.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)

	duration := clampDuration(req.DurationSeconds, c.config.Video.MaxDurationSeconds)
	if duration <= 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("job %s has non-positive duration %.2f", req.ID, req.DurationSeconds))
		return
	}

	overlays := c.pipeline.Build(transcript, duration, c.config.Video.Width, c.config.Video.Height)
	slog.Info("caption pipeline complete",
		"job", req.ID,
		"segments", len(transcript),
		"overlays", len(overlays))

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetOverlaysParameterName(), overlays)
	context.Add(c.GetOutputParam(), overlays)
}

// clampDuration limits a narration length to the platform maximum. Shorts
// longer than the limit are cut, not rejected.
func clampDuration(d float64, max float64) float64 {
	if max > 0 && d > max {
		return max
	}
	return d
}
