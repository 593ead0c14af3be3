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

// This file implements the asset prefetch workflow. It listens on its own
// subscription and warms a bundle for an upcoming topic: the collected files
// land in a persistent prefetch directory under the workspace root, where the
// render path can pick them up later. No composition, upload, or cleanup
// happens here.
package workflow

import (
	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/assets"
	"github.com/Th3Ya0vi/ReelComp/internal/core/commands"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
)

// AssetPrefetchWorkflow collects an asset bundle ahead of a render.
type AssetPrefetchWorkflow struct {
	cor.BaseCommand
	config    *cloud.Config
	collector *assets.Collector
	chain     cor.Chain
}

// Execute runs the prefetch workflow by invoking the underlying chain.
func (w *AssetPrefetchWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the two-step prefetch chain: parse the trigger,
// collect the bundle. The workspace intentionally survives the run.
func (w *AssetPrefetchWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewPrefetchTriggerReader("read-prefetch-trigger", w.prefetchRoot()))
	out.AddCommand(commands.NewAssetCollect("prefetch-assets", w.collector, w.config))
	w.chain = out
}

// prefetchRoot is where prefetched bundles accumulate. The FUSE mount point
// is preferred when configured so warmed assets survive instance restarts.
func (w *AssetPrefetchWorkflow) prefetchRoot() string {
	return w.config.Storage.GCSFuseMountPoint
}

// NewAssetPrefetchWorkflow is the constructor for the prefetch workflow. It
// shares the collector construction with the assembly workflow so both paths
// see the same provider cascade.
func NewAssetPrefetchWorkflow(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	imageModelName string) *AssetPrefetchWorkflow {

	w := &AssetPrefetchWorkflow{
		BaseCommand: *cor.NewBaseCommand("asset-prefetch"),
		config:      config,
		collector:   NewCollector(config, serviceClients, imageModelName),
	}
	w.initializeChain()
	return w
}
