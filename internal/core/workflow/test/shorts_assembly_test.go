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

// This file tests the shorts assembly workflow's trigger handling: the chain
// must reject bad trigger payloads at the first command and record the
// failure in its context without touching any cloud service.
package workflow_test

import (
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/workflow"
	test "github.com/Th3Ya0vi/ReelComp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
)

// runAssembly constructs the assembly workflow and executes it over the given
// trigger payload, returning the chain context for inspection.
func runAssembly(t *testing.T, payload string, spanName string) cor.Context {
	t.Helper()

	traceCtx, span := tracer.Start(ctx, spanName)
	defer span.End()

	assembly := workflow.NewShortsAssemblyWorkflow(config, cloudClients, "fallback-stills")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(traceCtx)
	chainCtx.Add(cor.CtxIn, payload)

	assembly.Execute(chainCtx)

	if chainCtx.HasErrors() {
		span.SetStatus(codes.Error, "chain recorded errors")
	} else {
		span.SetStatus(codes.Ok, "chain completed")
	}
	return chainCtx
}

// TestShortsAssemblyWorkflowName verifies the workflow registers under the
// name the listeners and telemetry expect.
func TestShortsAssemblyWorkflowName(t *testing.T) {
	assembly := workflow.NewShortsAssemblyWorkflow(config, cloudClients, "fallback-stills")
	assert.Equal(t, "shorts-assembly", assembly.GetName())
}

// TestShortsAssemblyRejectsMalformedTrigger verifies a payload that is not a
// job request stops the chain at the trigger reader.
func TestShortsAssemblyRejectsMalformedTrigger(t *testing.T) {
	chainCtx := runAssembly(t, "this is not json", "assembly-malformed-trigger-test")

	assert.True(t, chainCtx.HasErrors())
	_, failed := chainCtx.GetErrors()["read-job-trigger"]
	assert.True(t, failed)
}

// TestShortsAssemblyRejectsMissingMediaReferences verifies a prefetch-shaped
// request (no narration or transcript objects) cannot start a render.
func TestShortsAssemblyRejectsMissingMediaReferences(t *testing.T) {
	chainCtx := runAssembly(t, test.GetTestPrefetchRequestText(), "assembly-missing-media-test")

	assert.True(t, chainCtx.HasErrors())
	_, failed := chainCtx.GetErrors()["read-job-trigger"]
	assert.True(t, failed)
}
