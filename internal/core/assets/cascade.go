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

// This file implements the acquisition cascade itself.
//
// Logic Flow:
//  1. Enhance the search terms and classify the topic (finance vs general).
//  2. Images: for each enhanced term, walk the image sources in priority
//     order and take the first source that returns anything; as a last rung,
//     generate up to two stills per term.
//  3. Videos: search a shuffled three-term subset of the curated visual
//     vocabulary across the video sources.
//  4. On video shortfall, widen with the shuffled secondary fallback terms.
//  5. Still short: synthesize placeholder clips locally so the bundle always
//     has background footage.
//
// Every provider error or empty result is logged and stepped past. Collect
// has no error return by design.
package assets

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// maxGeneratedImagesPerTerm bounds the generative rung of the image cascade.
const maxGeneratedImagesPerTerm = 2

// CollectRequest describes one acquisition run.
type CollectRequest struct {
	SearchTerms []string
	NumImages   int
	NumVideos   int
	Dir         string

	// Placeholder clip geometry.
	ClipDuration float64
	Width        int
	Height       int
}

// PlaceholderMaker abstracts the terminal synthesis rung. The production
// implementation is Synthesizer; tests substitute a stub to keep ffmpeg out
// of the loop.
type PlaceholderMaker interface {
	PlaceholderBatch(ctx context.Context, terms []string, count int, duration float64, width, height int, dir string) []string
}

// Collector walks image and video sources in priority order and synthesizes
// placeholders when they all come up empty.
type Collector struct {
	imageSources []ImageSource
	videoSources []VideoSource
	generator    StillGenerator
	synth        PlaceholderMaker
	rng          *rand.Rand
}

// NewCollector creates a cascade over the given sources, in priority order.
// The generator may be nil to disable the generative rungs; a nil synth
// selects the ffmpeg-backed Synthesizer.
func NewCollector(images []ImageSource, videos []VideoSource, generator StillGenerator, synth PlaceholderMaker, rng *rand.Rand) *Collector {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if synth == nil {
		synth = NewSynthesizer(generator, rng)
	}
	return &Collector{
		imageSources: images,
		videoSources: videos,
		generator:    generator,
		synth:        synth,
		rng:          rng,
	}
}

// Collect acquires a bundle of images and background videos for the request.
// It always returns a usable bundle; the degenerate case is solid-color
// placeholder clips and no images.
func (c *Collector) Collect(ctx context.Context, req CollectRequest) *model.AssetBundle {
	bundle := model.NewAssetBundle()
	terms, financial := EnhanceTerms(req.SearchTerms)
	slog.Info("collecting assets",
		"terms", terms,
		"financial", financial,
		"num_images", req.NumImages,
		"num_videos", req.NumVideos)

	// Images follow the topic.
	if req.NumImages > 0 && len(terms) > 0 {
		perTerm := req.NumImages/len(terms) + 1
		for _, term := range terms {
			if len(bundle.Images) >= req.NumImages {
				break
			}
			for _, asset := range c.collectImages(ctx, term, perTerm, req.Dir) {
				if len(bundle.Images) >= req.NumImages {
					break
				}
				bundle.Images = append(bundle.Images, asset)
			}
		}
	}

	// Background videos are abstract texture, decoupled from the topic.
	if req.NumVideos > 0 {
		visualTerms := VisualTerms(financial, c.rng)
		perTerm := req.NumVideos/len(visualTerms) + 1
		for _, term := range visualTerms {
			if len(bundle.Videos) >= req.NumVideos {
				break
			}
			for _, asset := range c.collectVideos(ctx, term, perTerm, req.Dir) {
				if len(bundle.Videos) >= req.NumVideos {
					break
				}
				bundle.Videos = append(bundle.Videos, asset)
			}
		}

		if len(bundle.Videos) < req.NumVideos {
			slog.Debug("video shortfall, widening with fallback terms",
				"have", len(bundle.Videos), "want", req.NumVideos)
			for _, term := range FallbackVisualTerms(financial, c.rng) {
				for _, asset := range c.collectVideos(ctx, term, req.NumVideos-len(bundle.Videos), req.Dir) {
					bundle.Videos = append(bundle.Videos, asset)
				}
				if len(bundle.Videos) >= req.NumVideos {
					break
				}
			}
		}

		if len(bundle.Videos) < req.NumVideos {
			missing := req.NumVideos - len(bundle.Videos)
			slog.Warn("synthesizing placeholder clips", "count", missing)
			paths := c.synth.PlaceholderBatch(ctx, terms, missing, req.ClipDuration, req.Width, req.Height, req.Dir)
			for _, p := range paths {
				bundle.Videos = append(bundle.Videos, &model.MediaAsset{
					Path:     p,
					Kind:     model.AssetKindVideo,
					Provider: "placeholder",
				})
			}
		}
	}

	slog.Info("asset collection finished",
		"images", len(bundle.Images),
		"videos", len(bundle.Videos),
		"placeholders", bundle.PlaceholderCount())
	return bundle
}

// collectImages walks the image sources for one term and returns the first
// non-empty batch, falling through to still generation.
func (c *Collector) collectImages(ctx context.Context, term string, max int, dir string) []*model.MediaAsset {
	for _, src := range c.imageSources {
		paths, err := src.FetchImages(ctx, term, max, dir)
		if err != nil {
			slog.Error("image source failed", "source", src.Name(), "term", term, "error", err)
			continue
		}
		if len(paths) == 0 {
			slog.Debug("image source returned nothing", "source", src.Name(), "term", term)
			continue
		}
		return wrapAssets(paths, model.AssetKindImage, src.Name())
	}

	if c.generator == nil {
		slog.Warn("no images found for term", "term", term)
		return nil
	}

	n := max
	if n > maxGeneratedImagesPerTerm {
		n = maxGeneratedImagesPerTerm
	}
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path, err := c.generator.GenerateStill(ctx, term, dir)
		if err != nil {
			slog.Error("still generation failed", "term", term, "error", err)
			break
		}
		paths = append(paths, path)
	}
	return wrapAssets(paths, model.AssetKindImage, "generated")
}

// collectVideos walks the video sources for one term and returns the first
// non-empty batch.
func (c *Collector) collectVideos(ctx context.Context, term string, max int, dir string) []*model.MediaAsset {
	for _, src := range c.videoSources {
		paths, err := src.FetchVideos(ctx, term, max, dir)
		if err != nil {
			slog.Error("video source failed", "source", src.Name(), "term", term, "error", err)
			continue
		}
		if len(paths) == 0 {
			slog.Debug("video source returned nothing", "source", src.Name(), "term", term)
			continue
		}
		return wrapAssets(paths, model.AssetKindVideo, src.Name())
	}
	slog.Warn("no videos found for term", "term", term)
	return nil
}

func wrapAssets(paths []string, kind model.AssetKind, provider string) []*model.MediaAsset {
	out := make([]*model.MediaAsset, 0, len(paths))
	for _, p := range paths {
		out = append(out, &model.MediaAsset{Path: p, Kind: kind, Provider: provider})
	}
	return out
}
