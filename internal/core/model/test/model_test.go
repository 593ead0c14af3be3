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

// Package model_test contains unit tests for the data models defined in the
// model package: the asset bundle accessors and the transcript operations the
// caption pipeline depends on.
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// TestNewAssetBundle verifies the constructor initializes both lists so
// callers can append without nil checks.
func TestNewAssetBundle(t *testing.T) {
	bundle := model.NewAssetBundle()

	assert.NotNil(t, bundle.Images)
	assert.NotNil(t, bundle.Videos)
	assert.Equal(t, 0, len(bundle.Images))
	assert.Equal(t, 0, len(bundle.Videos))
}

// TestAssetBundlePaths verifies the path accessors preserve collection order.
func TestAssetBundlePaths(t *testing.T) {
	bundle := model.NewAssetBundle()
	bundle.Videos = append(bundle.Videos,
		&model.MediaAsset{Path: "/tmp/a.mp4", Kind: model.AssetKindVideo, Provider: "pexels"},
		&model.MediaAsset{Path: "/tmp/b.mp4", Kind: model.AssetKindVideo, Provider: "pixabay"},
	)
	bundle.Images = append(bundle.Images,
		&model.MediaAsset{Path: "/tmp/c.jpg", Kind: model.AssetKindImage, Provider: "unsplash"},
	)

	assert.Equal(t, []string{"/tmp/a.mp4", "/tmp/b.mp4"}, bundle.VideoPaths())
	assert.Equal(t, []string{"/tmp/c.jpg"}, bundle.ImagePaths())
}

// TestAssetBundlePlaceholderCount verifies only synthesized videos are counted.
func TestAssetBundlePlaceholderCount(t *testing.T) {
	bundle := model.NewAssetBundle()
	bundle.Videos = append(bundle.Videos,
		&model.MediaAsset{Path: "/tmp/a.mp4", Kind: model.AssetKindVideo, Provider: "pexels"},
		&model.MediaAsset{Path: "/tmp/b.mp4", Kind: model.AssetKindVideo, Provider: "placeholder"},
		&model.MediaAsset{Path: "/tmp/c.mp4", Kind: model.AssetKindVideo, Provider: "placeholder"},
	)

	assert.Equal(t, 2, bundle.PlaceholderCount())
}

// TestTranscriptSortByStart verifies the sort is by start time and stable for
// segments that share one.
func TestTranscriptSortByStart(t *testing.T) {
	transcript := model.Transcript{
		{Text: "third", Start: 2.0, End: 2.5},
		{Text: "first", Start: 0.0, End: 0.5},
		{Text: "second-a", Start: 1.0, End: 1.4},
		{Text: "second-b", Start: 1.0, End: 1.6},
	}

	transcript.SortByStart()

	assert.Equal(t, "first", transcript[0].Text)
	assert.Equal(t, "second-a", transcript[1].Text)
	assert.Equal(t, "second-b", transcript[2].Text)
	assert.Equal(t, "third", transcript[3].Text)
}

// TestTranscriptClone verifies the clone shares no segment pointers with the
// original, so mutation in one never leaks into the other.
func TestTranscriptClone(t *testing.T) {
	original := model.Transcript{
		{Text: "hello", Start: 0.0, End: 0.5},
	}

	clone := original.Clone()
	clone[0].Text = "changed"
	clone[0].End = 9.9

	assert.Equal(t, "hello", original[0].Text)
	assert.Equal(t, 0.5, original[0].End)
}

// TestCaptionSegmentDuration verifies the display-length helper.
func TestCaptionSegmentDuration(t *testing.T) {
	seg := &model.CaptionSegment{Text: "x", Start: 1.25, End: 3.0}
	assert.Equal(t, 1.75, seg.Duration())
}
