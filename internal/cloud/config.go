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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for Google Cloud services, stock-media providers, image generation models,
// Pub/Sub topics, and the caption and render pipelines.
//
// This file centralizes all configuration-related structs, making it easy
// to understand and manage the application's configurable parameters.
//
// Structs:
//   - BigQueryDataSource: Configuration for the BigQuery dataset and jobs table.
//   - VertexAiImageModel: Configuration for a Vertex AI image generation model.
//   - TopicSubscription: Configuration for a single Pub/Sub topic subscription.
//   - Storage: Configuration for Google Cloud Storage buckets.
//   - Providers: API credentials for the stock-media providers.
//   - Captions: Tunables for the caption pipeline.
//   - Video: Output geometry and limits for rendered shorts.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

// BigQueryDataSource represents the configuration for a BigQuery data source.
type BigQueryDataSource struct {
	DatasetName string `toml:"dataset"`    // The name of the BigQuery dataset.
	JobsTable   string `toml:"jobs_table"` // The name of the table holding shorts job records.
}

// VertexAiImageModel represents the configuration for a Vertex AI image
// generation model.
type VertexAiImageModel struct {
	Model     string `toml:"model"`      // The name of the Vertex AI image model (e.g., an Imagen model).
	RateLimit int    `toml:"rate_limit"` // The rate limit for the model in requests per second.
}

// TopicSubscription represents the configuration for a Pub/Sub topic subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The name of the Pub/Sub subscription.
	Topic            string `toml:"topic"`              // The topic the API publishes job requests to.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The name of the dead-letter topic for the subscription.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The timeout for the subscription in seconds.
}

// Storage represents the configuration for storage buckets.
type Storage struct {
	MediaInputBucket   string `toml:"media_input_bucket"`   // Bucket holding narration audio and transcript JSON.
	RenderOutputBucket string `toml:"render_output_bucket"` // Bucket receiving finished renders.
	GCSFuseMountPoint  string `toml:"gcs_fuse_mount_point"` // The mount point for GCS FUSE, when present.
}

// Providers holds API credentials for the stock-media providers. Keys may be
// left empty in the TOML files and supplied through the environment instead
// (PEXELS_API_KEY, PIXABAY_API_KEY), which keeps secrets out of checked-in
// configuration.
type Providers struct {
	PexelsAPIKey  string `toml:"pexels_api_key"`
	PixabayAPIKey string `toml:"pixabay_api_key"`
}

// Captions holds the tunables for the caption pipeline.
type Captions struct {
	FillerThreshold float64 `toml:"filler_threshold"` // Segment-coverage fraction for filler suppression.
	SplitThreshold  float64 `toml:"split_threshold"`  // Overlap size separating truncation from midpoint splits.
	FullVariantSet  bool    `toml:"full_variant_set"` // Opt in to the scaling/overshooting animation variants.
}

// Video holds the output geometry and limits for rendered shorts.
type Video struct {
	Width              int     `toml:"width"`                // Output frame width in pixels.
	Height             int     `toml:"height"`               // Output frame height in pixels.
	FPS                int     `toml:"fps"`                  // Output frame rate.
	MaxDurationSeconds float64 `toml:"max_duration_seconds"` // Hard duration cap for the Shorts format.
	DefaultNumImages   int     `toml:"default_num_images"`   // Images to collect when the request does not say.
	DefaultNumVideos   int     `toml:"default_num_videos"`   // Videos to collect when the request does not say.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name                      string `toml:"name"`                         // The name of the application.
		GoogleProjectId           string `toml:"google_project_id"`            // The Google Cloud project ID.
		GoogleLocation            string `toml:"location"`                     // The Google Cloud location.
		ThreadPoolSize            int    `toml:"thread_pool_size"`             // The size of the worker pool for parallel processing tasks.
		SignerServiceAccountEmail string `toml:"signer_service_account_email"` // The service account email used for signing GCS URLs.
	} `toml:"application"`
	Storage            Storage                       `toml:"storage"`               // Storage configuration.
	BigQueryDataSource BigQueryDataSource            `toml:"big_query_data_source"` // BigQuery data source configuration.
	TopicSubscriptions map[string]TopicSubscription  `toml:"topic_subscriptions"`   // Pub/Sub subscriptions, keyed by a logical name (e.g., "ShortsJobs").
	Providers          Providers                     `toml:"providers"`             // Stock-media provider credentials.
	ImageModels        map[string]VertexAiImageModel `toml:"image_models"`          // Vertex AI image models, keyed by a logical name (e.g., "fallback-stills").
	Captions           Captions                      `toml:"captions"`              // Caption pipeline tunables.
	Video              Video                         `toml:"video"`                 // Render output settings.
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The maps must be initialized before the configuration loader
// tries to populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
		ImageModels:        make(map[string]VertexAiImageModel),
	}
}
