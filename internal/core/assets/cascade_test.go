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

// This file tests the cascade's fallback behavior with stub providers.
package assets_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/assets"
	"github.com/stretchr/testify/assert"
)

// stubImageSource returns a fixed number of fake paths per call, or an error.
type stubImageSource struct {
	name  string
	count int
	err   error
	calls int
}

func (s *stubImageSource) Name() string { return s.name }

func (s *stubImageSource) FetchImages(_ context.Context, term string, max int, _ string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	n := s.count
	if n > max {
		n = max
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("/tmp/%s_%s_%d.jpg", s.name, term, i))
	}
	return out, nil
}

// stubVideoSource is the video counterpart; onlyTerms restricts which search
// terms produce results.
type stubVideoSource struct {
	name      string
	count     int
	err       error
	onlyTerms map[string]bool
	calls     int
}

func (s *stubVideoSource) Name() string { return s.name }

func (s *stubVideoSource) FetchVideos(_ context.Context, term string, max int, _ string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.onlyTerms != nil && !s.onlyTerms[term] {
		return nil, nil
	}
	n := s.count
	if n > max {
		n = max
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("/tmp/%s_%s_%d.mp4", s.name, term, i))
	}
	return out, nil
}

// stubSynth records placeholder requests and returns fake clip paths.
type stubSynth struct {
	requested int
}

func (s *stubSynth) PlaceholderBatch(_ context.Context, _ []string, count int, _ float64, _, _ int, _ string) []string {
	s.requested += count
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, fmt.Sprintf("/tmp/placeholder_%d.mp4", i))
	}
	return out
}

// TestCollectPrefersFirstSource verifies priority order: when the first
// source delivers, later sources are never consulted for that term.
func TestCollectPrefersFirstSource(t *testing.T) {
	first := &stubImageSource{name: "first", count: 5}
	second := &stubImageSource{name: "second", count: 5}
	collector := assets.NewCollector(
		[]assets.ImageSource{first, second}, nil, nil, &stubSynth{}, nil)

	bundle := collector.Collect(context.Background(), assets.CollectRequest{
		SearchTerms: []string{"quantum computing"},
		NumImages:   3,
	})

	assert.Equal(t, 3, len(bundle.Images))
	assert.Equal(t, 0, second.calls)
	for _, img := range bundle.Images {
		assert.Equal(t, "first", img.Provider)
	}
}

// TestCollectAdvancesPastFailingSource verifies that a provider error is
// logged and stepped past rather than propagated.
func TestCollectAdvancesPastFailingSource(t *testing.T) {
	broken := &stubImageSource{name: "broken", err: errors.New("rate limited")}
	working := &stubImageSource{name: "working", count: 5}
	collector := assets.NewCollector(
		[]assets.ImageSource{broken, working}, nil, nil, &stubSynth{}, nil)

	bundle := collector.Collect(context.Background(), assets.CollectRequest{
		SearchTerms: []string{"quantum computing"},
		NumImages:   2,
	})

	assert.Equal(t, 2, len(bundle.Images))
	assert.Equal(t, "working", bundle.Images[0].Provider)
	assert.Greater(t, broken.calls, 0)
}

// TestCollectNonsenseTermTerminates verifies the core liveness property: a
// term no provider can serve ("xyzzy") still produces a usable bundle via
// placeholder synthesis, and Collect returns rather than retrying forever.
func TestCollectNonsenseTermTerminates(t *testing.T) {
	emptyImages := &stubImageSource{name: "empty", count: 0}
	emptyVideos := &stubVideoSource{name: "empty", count: 0}
	synth := &stubSynth{}
	collector := assets.NewCollector(
		[]assets.ImageSource{emptyImages},
		[]assets.VideoSource{emptyVideos},
		nil, synth, nil)

	bundle := collector.Collect(context.Background(), assets.CollectRequest{
		SearchTerms:  []string{"xyzzy"},
		NumImages:    2,
		NumVideos:    3,
		ClipDuration: 5,
		Width:        1080,
		Height:       1920,
	})

	assert.Equal(t, 0, len(bundle.Images))
	assert.Equal(t, 3, len(bundle.Videos))
	assert.Equal(t, 3, synth.requested)
	assert.Equal(t, 3, bundle.PlaceholderCount())
}

// TestCollectVideoShortfallWidens verifies the fallback-term widening: when
// the primary visual terms return nothing, the secondary pool fills the
// request before any placeholder is synthesized.
func TestCollectVideoShortfallWidens(t *testing.T) {
	fallbackOnly := &stubVideoSource{
		name:  "stock",
		count: 5,
		onlyTerms: map[string]bool{
			"abstract motion":     true,
			"slow motion":         true,
			"gradient background": true,
			"ambient visuals":     true,
			"relaxing scenery":    true,
			"underwater scene":    true,
		},
	}
	synth := &stubSynth{}
	collector := assets.NewCollector(
		nil, []assets.VideoSource{fallbackOnly}, nil, synth, nil)

	bundle := collector.Collect(context.Background(), assets.CollectRequest{
		SearchTerms: []string{"gardening"},
		NumVideos:   3,
	})

	assert.Equal(t, 3, len(bundle.Videos))
	assert.Equal(t, 0, synth.requested)
	assert.Equal(t, "stock", bundle.Videos[0].Provider)
}

// TestCollectRespectsLimits verifies that over-delivering providers are
// capped at the requested counts.
func TestCollectRespectsLimits(t *testing.T) {
	generous := &stubImageSource{name: "generous", count: 50}
	generousVideos := &stubVideoSource{name: "generous", count: 50}
	collector := assets.NewCollector(
		[]assets.ImageSource{generous},
		[]assets.VideoSource{generousVideos},
		nil, &stubSynth{}, nil)

	bundle := collector.Collect(context.Background(), assets.CollectRequest{
		SearchTerms: []string{"city skyline", "architecture"},
		NumImages:   4,
		NumVideos:   2,
	})

	assert.Equal(t, 4, len(bundle.Images))
	assert.Equal(t, 2, len(bundle.Videos))
}
