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

// This file defines a command for downloading a GCS object into the job's
// workspace directory. It bridges the cloud side of a workflow and the
// local-file tools (ffmpeg in particular): the object is streamed to disk
// under its original base name so probing tools see the real extension, and
// the local path is handed to the next command.
package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
)

// GCSToWorkspaceFile downloads one GCS object into the workflow's workspace.
// The GCS reference is read from the command's input parameter, so a chain
// can carry several instances pointed at different well-known keys.
type GCSToWorkspaceFile struct {
	cor.BaseCommand
	client *storage.Client
}

// NewGCSToWorkspaceFile is the constructor for the GCSToWorkspaceFile
// command. Callers set InputParamName and OutputParamName to route the
// download.
func NewGCSToWorkspaceFile(name string, client *storage.Client) *GCSToWorkspaceFile {
	return &GCSToWorkspaceFile{BaseCommand: *cor.NewBaseCommand(name), client: client}
}

// IsExecutable requires both the GCS reference and the workspace directory.
func (c *GCSToWorkspaceFile) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(c.GetInputParam()) != nil &&
		context.Get(GetWorkspaceParameterName()) != nil
}

// Execute streams the object from GCS into the workspace.
func (c *GCSToWorkspaceFile) Execute(context cor.Context) {
	msg := context.Get(c.GetInputParam()).(*cloud.GCSObject)
	workspace := context.Get(GetWorkspaceParameterName()).(string)

	obj := c.client.Bucket(msg.Bucket).Object(msg.Name)
	reader, err := obj.NewReader(context.GetContext())
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to create GCS reader for gs://%s/%s: %w", msg.Bucket, msg.Name, err))
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("failed to close GCS reader: %v\n", err)
		}
	}()

	localPath := filepath.Join(workspace, filepath.Base(msg.Name))
	out, err := os.Create(localPath)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("could not create workspace file %s: %w", localPath, err))
		return
	}

	// io.Copy streams in chunks; narration audio can run to tens of
	// megabytes and must not be buffered whole.
	written, err := io.Copy(out, reader)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to copy gs://%s/%s, %d bytes written: %w", msg.Bucket, msg.Name, written, err))
		_ = out.Close()
		return
	}
	_ = out.Close()

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("downloaded gs://%s/%s to %s (%d bytes)", msg.Bucket, msg.Name, localPath, written)
	context.AddTempFile(localPath)
	context.Add(c.GetOutputParam(), localPath)
}
