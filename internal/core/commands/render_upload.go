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

// This file defines the command that uploads the composed render to the
// output bucket. The MIME type is sniffed from the file's magic bytes rather
// than trusted from the extension, so the object serves with a correct
// Content-Type when streamed back to clients.
package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/h2non/filetype"

	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// RenderUpload streams the finished render from the workspace to GCS.
type RenderUpload struct {
	cor.BaseCommand
	client *storage.Client
	bucket string
}

// NewRenderUpload is the constructor for the RenderUpload command.
func NewRenderUpload(name string, client *storage.Client, bucket string) *RenderUpload {
	return &RenderUpload{BaseCommand: *cor.NewBaseCommand(name), client: client, bucket: bucket}
}

// IsExecutable requires the render path and the job request.
func (c *RenderUpload) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(GetRenderFileParameterName()) != nil &&
		context.Get(GetJobRequestParameterName()) != nil
}

// Execute uploads the render and publishes its gs:// URL.
func (c *RenderUpload) Execute(context cor.Context) {
	path := context.Get(GetRenderFileParameterName()).(string)
	req := context.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)

	dat, err := os.Open(path)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to open render %s: %w", path, err))
		return
	}
	defer func() {
		if err := dat.Close(); err != nil {
			log.Printf("failed to close render file: %v\n", err)
		}
	}()

	objectName := fmt.Sprintf("%s%s", req.ID, filepath.Ext(path))
	writer := c.client.Bucket(c.bucket).Object(objectName).NewWriter(context.GetContext())
	writer.ContentType = sniffContentType(path)

	if written, err := io.Copy(writer, dat); err != nil {
		log.Printf("failed to copy render to GCS, %d bytes written: %v\n", written, err)
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		_ = writer.Close()
		return
	}

	// Close finalizes the upload; an error here means the object was not
	// committed.
	if err := writer.Close(); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to finalize upload of %s: %w", objectName, err))
		return
	}

	url := fmt.Sprintf("gs://%s/%s", c.bucket, objectName)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("uploaded render for job %s to %s", req.ID, url)
	context.Add(GetRenderURLParameterName(), url)
	context.Add(c.GetOutputParam(), url)
}

// sniffContentType reads the file header and matches it against known magic
// numbers, falling back to the generic mp4 type the compositor produces.
func sniffContentType(path string) string {
	head := make([]byte, 261)
	f, err := os.Open(path)
	if err != nil {
		return "video/mp4"
	}
	defer func() { _ = f.Close() }()

	n, err := f.Read(head)
	if err != nil || n == 0 {
		return "video/mp4"
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "video/mp4"
	}
	return kind.MIME.Value
}
