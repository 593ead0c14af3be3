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

// This file wires the workflow chains to their Pub/Sub listeners. Each
// listener runs as a background goroutine for the life of the process; the
// root context cancels them on shutdown.
package main

import (
	"context"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/workflow"
)

// Logical names of the configured subscriptions and the image model used for
// generated stills. These key into the maps in the TOML configuration.
const (
	SubscriptionShortsJobs    = "ShortsJobs"
	SubscriptionAssetPrefetch = "AssetPrefetch"
	ImageModelFallbackStills  = "fallback-stills"
)

// SetupListeners creates the two workflows and attaches them to their
// listeners.
func SetupListeners(config *cloud.Config, cloudClients *cloud.ServiceClients, ctx context.Context) {
	// The assembly workflow performs the full render path for each job
	// request message.
	assembly := workflow.NewShortsAssemblyWorkflow(config, cloudClients, ImageModelFallbackStills)
	cloudClients.PubSubListeners[SubscriptionShortsJobs].SetCommand(assembly)
	cloudClients.PubSubListeners[SubscriptionShortsJobs].Listen(ctx)

	// The prefetch workflow warms an asset bundle ahead of a render.
	prefetch := workflow.NewAssetPrefetchWorkflow(config, cloudClients, ImageModelFallbackStills)
	cloudClients.PubSubListeners[SubscriptionAssetPrefetch].SetCommand(prefetch)
	cloudClients.PubSubListeners[SubscriptionAssetPrefetch].Listen(ctx)
}
