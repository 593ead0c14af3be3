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

// This file defines the terminal cleanup step of the assembly workflow. A
// job's workspace holds the narration audio, transcript, every collected
// asset, and the render itself; once the render is uploaded nothing in it is
// needed again. The command runs in a continue-on-failure chain so the
// workspace is removed even when an earlier step failed.
package commands

import (
	"log"
	"os"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
)

// WorkspaceCleanup removes the job's scratch directory.
type WorkspaceCleanup struct {
	cor.BaseCommand
}

// NewWorkspaceCleanup is the constructor for the WorkspaceCleanup command.
func NewWorkspaceCleanup(name string) *WorkspaceCleanup {
	return &WorkspaceCleanup{BaseCommand: *cor.NewBaseCommand(name)}
}

// IsExecutable only needs the workspace key; the command must run regardless
// of upstream errors.
func (c *WorkspaceCleanup) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(GetWorkspaceParameterName()) != nil
}

// Execute deletes the workspace tree. A failed removal is logged and counted
// but never added to the context: cleanup must not fail an otherwise
// successful job.
func (c *WorkspaceCleanup) Execute(context cor.Context) {
	workspace := context.Get(GetWorkspaceParameterName()).(string)

	if err := os.RemoveAll(workspace); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		log.Printf("failed to remove workspace %s: %v\n", workspace, err)
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("removed workspace %s", workspace)
}
