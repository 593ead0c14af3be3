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

// Package workflow defines the high-level orchestrations, combining commands
// into coherent pipelines. This file implements the shorts assembly workflow,
// the main render path of the application.
package workflow

import (
	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/assets"
	"github.com/Th3Ya0vi/ReelComp/internal/core/commands"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
)

// ShortsAssemblyWorkflow turns one job request message into a finished
// vertical video: download the narration and transcript, build the caption
// overlays, collect the b-roll bundle, compose with ffmpeg, upload the
// render, and persist the job record. The workspace cleanup runs even when a
// step fails, so a crashed job never leaves scratch media behind.
//
// The workflow is triggered by a Pub/Sub message carrying a
// model.ShortsJobRequest as JSON.
type ShortsAssemblyWorkflow struct {
	cor.BaseCommand
	config         *cloud.Config
	bigqueryClient *bigquery.Client
	storageClient  *storage.Client
	collector      *assets.Collector
	chain          cor.Chain
}

// Execute runs the assembly workflow by invoking the underlying chain.
func (w *ShortsAssemblyWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the command sequence. The render steps live in a
// nested chain that stops at the first error; the outer chain continues on
// failure so the terminal cleanup always runs.
func (w *ShortsAssemblyWorkflow) initializeChain() {
	render := cor.NewBaseChain("shorts-render")

	// Step 1: parse the trigger message, validate it, and create the job
	// workspace.
	render.AddCommand(commands.NewJobTriggerReader("read-job-trigger", ""))

	// Step 2: download the narration audio. The command reads the GCS
	// reference from the shared audio key and publishes the local path under
	// the shared audio-file key for the compositor.
	audio := commands.NewGCSToWorkspaceFile("download-narration", w.storageClient)
	audio.InputParamName = commands.GetAudioObjectParameterName()
	audio.OutputParamName = commands.GetAudioFileParameterName()
	render.AddCommand(audio)

	// Step 3: download the transcript JSON. Its output rides the default
	// chain piping straight into the loader.
	transcript := commands.NewGCSToWorkspaceFile("download-transcript", w.storageClient)
	transcript.InputParamName = commands.GetTranscriptObjectParameterName()
	render.AddCommand(transcript)

	// Step 4: parse the whisper-style segments into a transcript.
	render.AddCommand(commands.NewTranscriptLoader("load-transcript"))

	// Step 5: run the caption pipeline (normalize, suppress fillers,
	// reconcile timing, style, lay out, animate).
	render.AddCommand(commands.NewCaptionPipeline("build-captions", w.config))

	// Step 6: collect the asset bundle through the provider cascade.
	render.AddCommand(commands.NewAssetCollect("collect-assets", w.collector, w.config))

	// Step 7: compose the final video with ffmpeg.
	render.AddCommand(commands.NewShortsCompose("compose-short", w.config))

	// Step 8: upload the render to the output bucket.
	render.AddCommand(commands.NewRenderUpload("upload-render", w.storageClient, w.config.Storage.RenderOutputBucket))

	// Step 9: persist the job record for the status API.
	render.AddCommand(commands.NewJobPersistToBigQuery(
		"persist-job",
		w.bigqueryClient,
		w.config.BigQueryDataSource.DatasetName,
		w.config.BigQueryDataSource.JobsTable))

	out := cor.NewBaseChain(w.GetName())
	out.ContinueOnFailure(true)
	out.AddCommand(render)
	out.AddCommand(commands.NewWorkspaceCleanup("cleanup-workspace"))

	w.chain = out
}

// NewShortsAssemblyWorkflow is the constructor for the assembly workflow. It
// builds the asset collector from the configured providers and wires the
// command chain.
//
// Inputs:
//   - config: the application configuration.
//   - serviceClients: the initialized GCP clients.
//   - imageModelName: the logical name of the Vertex AI image model config to
//     use for generated stills (e.g. "fallback-stills").
func NewShortsAssemblyWorkflow(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	imageModelName string) *ShortsAssemblyWorkflow {

	w := &ShortsAssemblyWorkflow{
		BaseCommand:    *cor.NewBaseCommand("shorts-assembly"),
		config:         config,
		bigqueryClient: serviceClients.BigQueryClient,
		storageClient:  serviceClients.StorageClient,
		collector:      NewCollector(config, serviceClients, imageModelName),
	}
	w.initializeChain()
	return w
}

// NewCollector assembles the provider cascade from configuration: Pexels and
// Pixabay when keyed, Unsplash always (it needs no credentials), and the
// quota-aware Vertex AI image model as the generative rung when configured.
func NewCollector(config *cloud.Config, serviceClients *cloud.ServiceClients, imageModelName string) *assets.Collector {
	imageSources := make([]assets.ImageSource, 0, 3)
	videoSources := make([]assets.VideoSource, 0, 2)

	pexels := assets.NewPexelsSource(config.Providers.PexelsAPIKey, nil)
	if pexels.Enabled() {
		imageSources = append(imageSources, pexels)
		videoSources = append(videoSources, pexels)
	}
	pixabay := assets.NewPixabaySource(config.Providers.PixabayAPIKey, nil)
	if pixabay.Enabled() {
		imageSources = append(imageSources, pixabay)
		videoSources = append(videoSources, pixabay)
	}
	imageSources = append(imageSources, assets.NewUnsplashSource(nil))

	var generator assets.StillGenerator
	if m, ok := serviceClients.ImageModels[imageModelName]; ok {
		generator = m
	}

	return assets.NewCollector(imageSources, videoSources, generator, nil, nil)
}
