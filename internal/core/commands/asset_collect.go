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

// This file defines the command that runs the asset acquisition cascade for a
// job. The cascade itself never fails; the command only errors when the asset
// directory cannot be created.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/assets"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// AssetCollect gathers the b-roll and still images for a job into the
// workspace's assets directory.
type AssetCollect struct {
	cor.BaseCommand
	collector *assets.Collector
	config    *cloud.Config
}

// NewAssetCollect is the constructor for the AssetCollect command.
func NewAssetCollect(name string, collector *assets.Collector, config *cloud.Config) *AssetCollect {
	return &AssetCollect{BaseCommand: *cor.NewBaseCommand(name), collector: collector, config: config}
}

// IsExecutable requires the job request and the workspace directory.
func (c *AssetCollect) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(GetJobRequestParameterName()) != nil &&
		context.Get(GetWorkspaceParameterName()) != nil
}

// Execute runs the cascade and publishes the collected bundle.
func (c *AssetCollect) Execute(context cor.Context) {
	req := context.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)
	workspace := context.Get(GetWorkspaceParameterName()).(string)

	dir := filepath.Join(workspace, "assets")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to create asset directory for job %s: %w", req.ID, err))
		return
	}

	numImages := req.NumImages
	if numImages <= 0 {
		numImages = c.config.Video.DefaultNumImages
	}
	numVideos := req.NumVideos
	if numVideos <= 0 {
		numVideos = c.config.Video.DefaultNumVideos
	}

	duration := clampDuration(req.DurationSeconds, c.config.Video.MaxDurationSeconds)
	bundle := c.collector.Collect(context.GetContext(), assets.CollectRequest{
		SearchTerms:  req.SearchTerms,
		NumImages:    numImages,
		NumVideos:    numVideos,
		Dir:          dir,
		ClipDuration: duration / float64(maxInt(numVideos, 1)),
		Width:        c.config.Video.Width,
		Height:       c.config.Video.Height,
	})

	slog.Info("asset collection complete",
		"job", req.ID,
		"images", len(bundle.Images),
		"videos", len(bundle.Videos),
		"placeholders", bundle.PlaceholderCount())

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetAssetBundleParameterName(), bundle)
	context.Add(c.GetOutputParam(), bundle)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
