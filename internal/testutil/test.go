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

// Package test provides utility functions and mock data to support the application's
// test suite. It helps in setting up a consistent test environment, loading
// test-specific configurations, and providing sample payloads for workflows
// and commands.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
)

// StateManager acts as a simple in-memory cache for the application configuration
// during test runs. This prevents the need to reload configuration files for every
// test, speeding up the test suite.
type StateManager struct {
	config *cloud.Config
}

// state is a package-level variable that holds the singleton instance of StateManager,
// ensuring that the configuration is loaded only once per test run.
var state = &StateManager{}

// HandleErr is a simple test helper function that checks if an error is not nil.
// If an error exists, it fails the test immediately by calling t.Errorf.
// This is a convenience function to reduce boilerplate error-checking code in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// GetTestJobRequestText returns a hardcoded JSON string that simulates a
// Pub/Sub message requesting a short render. The referenced audio and
// transcript objects point at the test input bucket.
//
// Returns:
//   - A string containing the JSON payload of a shorts job request.
func GetTestJobRequestText() string {
	return `{
  "id": "job-test-0001",
  "topic": "morning routines of athletes",
  "search_terms": ["sunrise run", "gym warmup", "healthy breakfast"],
  "audio_bucket": "reelcomp_test_media_inputs",
  "audio_object": "narration/job-test-0001.mp3",
  "transcript_bucket": "reelcomp_test_media_inputs",
  "transcript_object": "transcripts/job-test-0001.json",
  "duration_seconds": 42.5,
  "num_images": 2,
  "num_videos": 2
}`
}

// GetTestPrefetchRequestText returns a job request carrying only the fields a
// prefetch needs: an id and search terms, no media references.
//
// Returns:
//   - A string containing the JSON payload of a prefetch request.
func GetTestPrefetchRequestText() string {
	return `{
  "id": "prefetch-test-0001",
  "topic": "city nightlife",
  "search_terms": ["neon street", "rooftop bar"],
  "num_images": 2,
  "num_videos": 1
}`
}

// GetTestTranscriptText returns a hardcoded JSON transcript in the
// word-timestamped segment format produced by speech-to-text tooling. The
// segments include a filler word and a long pause so caption grouping
// behavior can be exercised against realistic input.
//
// Returns:
//   - A string containing the JSON payload of a transcript document.
func GetTestTranscriptText() string {
	return `{
  "segments": [
    { "text": "Every", "start": 0.0, "end": 0.4 },
    { "text": "morning", "start": 0.4, "end": 0.9 },
    { "text": "starts", "start": 0.9, "end": 1.3 },
    { "text": "um", "start": 1.3, "end": 1.5 },
    { "text": "before", "start": 1.5, "end": 1.9 },
    { "text": "sunrise", "start": 1.9, "end": 2.6 },
    { "text": "The", "start": 3.4, "end": 3.6 },
    { "text": "first", "start": 3.6, "end": 3.9 },
    { "text": "mile", "start": 3.9, "end": 4.3 },
    { "text": "is", "start": 4.3, "end": 4.5 },
    { "text": "always", "start": 4.5, "end": 4.9 },
    { "text": "the", "start": 4.9, "end": 5.0 },
    { "text": "hardest", "start": 5.0, "end": 5.6 }
  ]
}`
}

// SetupOS configures the necessary environment variables that the configuration
// loader (`cloud.LoadConfig`) depends on. By setting these variables, we can
// direct the loader to use the test-specific configuration files (e.g.,
// `configs/.env.test.toml`) instead of production or development ones.
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	// Set the directory where the configuration files are located.
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	// Set the runtime environment identifier to "test". This causes the loader
	// to look for a file named ".env.test.toml" for overrides.
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration.
// It ensures that the configuration is loaded from TOML files only once and
// is cached in the package-level `state` variable for subsequent calls.
// This is the primary way tests should retrieve their configuration.
//
// Returns:
//   - A pointer to the loaded and cached cloud.Config struct.
func GetConfig() *cloud.Config {
	// Check if the config is already cached.
	if state.config == nil {
		// If not cached, set up the OS environment for the test configuration.
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		// Create a new, empty config struct and populate it from the TOML
		// files. `LoadConfig` handles the hierarchical loading (base file +
		// test override).
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		// Cache the loaded config in our state manager.
		state.config = config
	}
	// Return the cached configuration.
	return state.config
}
