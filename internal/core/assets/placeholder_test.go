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

// This file tests the placeholder batch's image-generation gating through the
// renderer seams, so the suite never shells out to ffmpeg.
package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// noopStillGen satisfies StillGenerator so the batch considers image
// generation available; the renderer seams intercept before it is reached.
type noopStillGen struct{}

func (noopStillGen) GenerateStill(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("unused")
}

// newSeamedSynthesizer returns a synthesizer whose still renderer fails from
// failAt onward (0-based call index; negative never fails) and whose color
// renderer always succeeds. Call counts are reported through the returned
// pointers.
func newSeamedSynthesizer(failAt int) (s *Synthesizer, stillCalls, colorCalls *int) {
	stillCalls, colorCalls = new(int), new(int)
	s = NewSynthesizer(noopStillGen{}, nil)
	s.stillClip = func(_ context.Context, term string, _ float64, _, _ int, _ string) (string, error) {
		n := *stillCalls
		*stillCalls++
		if failAt >= 0 && n >= failAt {
			return "", errors.New("quota exhausted")
		}
		return fmt.Sprintf("/tmp/generated_%s_%d.mp4", term, n), nil
	}
	s.colorClip = func(term string, _ float64, _, _ int, _ string) (string, error) {
		n := *colorCalls
		*colorCalls++
		return fmt.Sprintf("/tmp/fallback_%s_%d.mp4", term, n), nil
	}
	return s, stillCalls, colorCalls
}

// TestPlaceholderBatchKeepsGeneratingWhileHealthy verifies that every clip in
// the batch gets an image-backed placeholder while generation keeps working,
// not just the first one.
func TestPlaceholderBatchKeepsGeneratingWhileHealthy(t *testing.T) {
	s, stillCalls, colorCalls := newSeamedSynthesizer(-1)

	out := s.PlaceholderBatch(context.Background(), []string{"markets", "growth"}, 3, 5, 1080, 1920, t.TempDir())

	assert.Equal(t, 3, len(out))
	assert.Equal(t, 3, *stillCalls)
	assert.Equal(t, 0, *colorCalls)
	for _, path := range out {
		assert.True(t, strings.Contains(path, "generated_"))
	}
}

// TestPlaceholderBatchShortCircuitsOnFirstFailure verifies that one failed
// generation switches the rest of the batch to solid color without trying the
// generator again.
func TestPlaceholderBatchShortCircuitsOnFirstFailure(t *testing.T) {
	s, stillCalls, colorCalls := newSeamedSynthesizer(0)

	out := s.PlaceholderBatch(context.Background(), []string{"markets"}, 3, 5, 1080, 1920, t.TempDir())

	assert.Equal(t, 3, len(out))
	assert.Equal(t, 1, *stillCalls)
	assert.Equal(t, 3, *colorCalls)
}

// TestPlaceholderBatchMidBatchFailureKeepsEarlierClips verifies the mixed
// case: clips produced before the failure stay image-backed, later ones are
// solid color.
func TestPlaceholderBatchMidBatchFailureKeepsEarlierClips(t *testing.T) {
	s, stillCalls, colorCalls := newSeamedSynthesizer(1)

	out := s.PlaceholderBatch(context.Background(), []string{"markets"}, 3, 5, 1080, 1920, t.TempDir())

	assert.Equal(t, 3, len(out))
	assert.Equal(t, 2, *stillCalls)
	assert.Equal(t, 2, *colorCalls)
	assert.True(t, strings.Contains(out[0], "generated_"))
	assert.True(t, strings.Contains(out[1], "fallback_"))
	assert.True(t, strings.Contains(out[2], "fallback_"))
}

// TestPlaceholderBatchWithoutGeneratorUsesColor verifies the nil-generator
// path goes straight to solid color.
func TestPlaceholderBatchWithoutGeneratorUsesColor(t *testing.T) {
	s := NewSynthesizer(nil, nil)
	colorCalls := 0
	s.colorClip = func(term string, _ float64, _, _ int, _ string) (string, error) {
		colorCalls++
		return fmt.Sprintf("/tmp/fallback_%s_%d.mp4", term, colorCalls), nil
	}

	out := s.PlaceholderBatch(context.Background(), nil, 2, 5, 1080, 1920, t.TempDir())

	assert.Equal(t, 2, len(out))
	assert.Equal(t, 2, colorCalls)
}
