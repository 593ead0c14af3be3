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

// This file defines the persistence step of the assembly workflow: the
// completed job's record is assembled from the shared context keys and
// streamed into the jobs table, making it visible to the status API.
package commands

import (
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// JobPersistToBigQuery writes the ShortsJob row for a finished render.
type JobPersistToBigQuery struct {
	cor.BaseCommand
	client  *bigquery.Client
	dataset string
	table   string
}

// NewJobPersistToBigQuery is the constructor for the JobPersistToBigQuery
// command.
func NewJobPersistToBigQuery(name string, client *bigquery.Client, dataset string, table string) *JobPersistToBigQuery {
	return &JobPersistToBigQuery{BaseCommand: *cor.NewBaseCommand(name), client: client, dataset: dataset, table: table}
}

// IsExecutable requires the request, the bundle, the overlays, and the
// uploaded render URL.
func (c *JobPersistToBigQuery) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil &&
		context.Get(GetJobRequestParameterName()) != nil &&
		context.Get(GetAssetBundleParameterName()) != nil &&
		context.Get(GetOverlaysParameterName()) != nil &&
		context.Get(GetRenderURLParameterName()) != nil
}

// Execute assembles the job record and streams it into BigQuery. The
// streaming inserter maps struct fields to columns via the bigquery tags on
// model.ShortsJob.
func (c *JobPersistToBigQuery) Execute(context cor.Context) {
	req := context.Get(GetJobRequestParameterName()).(*model.ShortsJobRequest)
	bundle := context.Get(GetAssetBundleParameterName()).(*model.AssetBundle)
	overlays := context.Get(GetOverlaysParameterName()).([]*captions.CaptionOverlay)
	renderURL := context.Get(GetRenderURLParameterName()).(string)

	job := &model.ShortsJob{
		ID:              req.ID,
		Topic:           req.Topic,
		Status:          model.JobStatusComplete,
		RenderURL:       renderURL,
		DurationSeconds: req.DurationSeconds,
		CaptionCount:    len(overlays),
		ImageCount:      len(bundle.Images),
		VideoCount:      len(bundle.Videos),
		PlaceholderUsed: bundle.PlaceholderCount() > 0,
		CreateTime:      time.Now().UTC(),
	}

	inserter := c.client.Dataset(c.dataset).Table(c.table).Inserter()
	if err := inserter.Put(context.GetContext(), job); err != nil {
		log.Printf("failed to write job record, id %s error %s\n", job.ID, err)
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("bigquery insert failed for job '%s': %w", job.ID, err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(cor.CtxOut, job)
	log.Printf("persisted job record %s (render %s)", job.ID, job.RenderURL)
}
