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

// Package model defines the core data structures for the application.
// This file holds the shorts-generation job types: the trigger message that
// arrives on Pub/Sub and the persistent record written to BigQuery once a
// render completes. The trigger references GCS objects only; the narration
// audio and the timestamped transcript are produced upstream by external
// collaborators (TTS and speech recognition) and are consumed here as opaque
// inputs.
package model

import "time"

// ShortsJobRequest is the JSON payload published to the render topic. One
// message describes one vertical video to assemble.
type ShortsJobRequest struct {
	ID               string   `json:"id"`                // unique job id; doubles as the workspace directory name
	Topic            string   `json:"topic"`             // human topic, e.g. "50/30/20 rule"
	SearchTerms      []string `json:"search_terms"`      // visual search terms derived from the script
	AudioBucket      string   `json:"audio_bucket"`      // GCS bucket holding the narration audio
	AudioObject      string   `json:"audio_object"`      // narration audio object name (mp3/m4a)
	TranscriptBucket string   `json:"transcript_bucket"` // GCS bucket holding the transcript
	TranscriptObject string   `json:"transcript_object"` // whisper-style segment JSON object name
	DurationSeconds  float64  `json:"duration_seconds"`  // narration length; clamped to the shorts maximum at render time
	NumImages        int      `json:"num_images"`        // requested still-image count for the bundle
	NumVideos        int      `json:"num_videos"`        // requested b-roll clip count for the bundle
}

// ShortsJob is the persistent record of a completed (or failed) render,
// written to the jobs table in BigQuery and served back through the API.
type ShortsJob struct {
	ID              string    `json:"id" bigquery:"id"`
	Topic           string    `json:"topic" bigquery:"topic"`
	Status          string    `json:"status" bigquery:"status"` // "complete" or "failed"
	RenderURL       string    `json:"render_url" bigquery:"render_url"`
	DurationSeconds float64   `json:"duration_seconds" bigquery:"duration_seconds"`
	CaptionCount    int       `json:"caption_count" bigquery:"caption_count"`
	ImageCount      int       `json:"image_count" bigquery:"image_count"`
	VideoCount      int       `json:"video_count" bigquery:"video_count"`
	PlaceholderUsed bool      `json:"placeholder_used" bigquery:"placeholder_used"`
	CreateTime      time.Time `json:"create_time" bigquery:"create_time"`
}

// Job status values persisted to BigQuery.
const (
	JobStatusComplete = "complete"
	JobStatusFailed   = "failed"
)
