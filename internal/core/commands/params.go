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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface for the shorts assembly
// and asset prefetch workflows. This file centralizes the well-known context
// parameter names commands use to share state beyond the default in/out
// piping, so producers and consumers cannot drift apart.
package commands

// GetJobRequestParameterName returns the context key holding the decoded
// *model.ShortsJobRequest for the running workflow.
func GetJobRequestParameterName() string {
	return "__JOB_REQUEST__"
}

// GetWorkspaceParameterName returns the context key holding the job's scratch
// directory path. Every file the workflow creates lives under it.
func GetWorkspaceParameterName() string {
	return "__WORKSPACE__"
}

// GetAudioObjectParameterName returns the context key holding the GCS
// reference of the narration audio.
func GetAudioObjectParameterName() string {
	return "__AUDIO_OBJECT__"
}

// GetTranscriptObjectParameterName returns the context key holding the GCS
// reference of the transcript JSON.
func GetTranscriptObjectParameterName() string {
	return "__TRANSCRIPT_OBJECT__"
}

// GetAudioFileParameterName returns the context key holding the local path of
// the downloaded narration audio.
func GetAudioFileParameterName() string {
	return "__AUDIO_FILE__"
}

// GetTranscriptParameterName returns the context key holding the parsed
// model.Transcript.
func GetTranscriptParameterName() string {
	return "__TRANSCRIPT__"
}

// GetOverlaysParameterName returns the context key holding the render-ready
// caption overlays produced by the caption pipeline.
func GetOverlaysParameterName() string {
	return "__OVERLAYS__"
}

// GetAssetBundleParameterName returns the context key holding the
// *model.AssetBundle collected for the job.
func GetAssetBundleParameterName() string {
	return "__ASSET_BUNDLE__"
}

// GetRenderFileParameterName returns the context key holding the local path
// of the composed video.
func GetRenderFileParameterName() string {
	return "__RENDER_FILE__"
}

// GetRenderURLParameterName returns the context key holding the gs:// URL of
// the uploaded render.
func GetRenderURLParameterName() string {
	return "__RENDER_URL__"
}
