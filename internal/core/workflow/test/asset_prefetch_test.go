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

// This file tests the asset prefetch workflow's trigger handling. Prefetch
// triggers carry no media references, so the validation is looser than the
// assembly side's, but an id is still mandatory.
package workflow_test

import (
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/workflow"
	"github.com/stretchr/testify/assert"
)

// TestAssetPrefetchWorkflowName verifies the workflow registers under the
// name the listeners and telemetry expect.
func TestAssetPrefetchWorkflowName(t *testing.T) {
	prefetch := workflow.NewAssetPrefetchWorkflow(config, cloudClients, "fallback-stills")
	assert.Equal(t, "asset-prefetch", prefetch.GetName())
}

// TestAssetPrefetchRejectsMissingID verifies a prefetch trigger without an id
// stops at the trigger reader before any collection work starts.
func TestAssetPrefetchRejectsMissingID(t *testing.T) {
	traceCtx, span := tracer.Start(ctx, "prefetch-missing-id-test")
	defer span.End()

	prefetch := workflow.NewAssetPrefetchWorkflow(config, cloudClients, "fallback-stills")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(traceCtx)
	chainCtx.Add(cor.CtxIn, `{"topic": "city nightlife", "search_terms": ["neon street"]}`)

	prefetch.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	_, failed := chainCtx.GetErrors()["read-prefetch-trigger"]
	assert.True(t, failed)
}

// TestAssetPrefetchRejectsMalformedTrigger verifies garbage payloads record
// an error instead of panicking the listener goroutine.
func TestAssetPrefetchRejectsMalformedTrigger(t *testing.T) {
	prefetch := workflow.NewAssetPrefetchWorkflow(config, cloudClients, "fallback-stills")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, "{{{{")

	prefetch.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}
