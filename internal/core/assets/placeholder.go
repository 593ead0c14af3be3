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

// This file implements the terminal rung of the cascade: locally synthesized
// placeholder clips. When every provider fails the short still ships, backed
// by either a generated still image looped for the requested duration or a
// solid-color clip with a random mid-brightness color.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const placeholderFPS = 24

// Synthesizer builds placeholder clips with ffmpeg. An optional still
// generator provides image-backed placeholders; without one (or after its
// first failure) clips fall back to solid color.
type Synthesizer struct {
	generator StillGenerator
	rng       *rand.Rand

	// Renderer seams, replaced in tests to keep ffmpeg out of the suite.
	stillClip func(ctx context.Context, term string, duration float64, width, height int, dir string) (string, error)
	colorClip func(term string, duration float64, width, height int, dir string) (string, error)
}

// NewSynthesizer creates a placeholder synthesizer. The generator may be nil.
func NewSynthesizer(generator StillGenerator, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Synthesizer{generator: generator, rng: rng}
	s.stillClip = s.StillClip
	s.colorClip = s.ColorClip
	return s
}

// randomColor picks an RGB color with each channel in [30, 200]: bright
// enough that white captions stay readable, dark enough that they do not wash
// out.
func (s *Synthesizer) randomColor() string {
	c := func() int { return 30 + s.rng.Intn(171) }
	return fmt.Sprintf("0x%02X%02X%02X", c(), c(), c())
}

func slugify(term string) string {
	return strings.ReplaceAll(term, " ", "_")
}

// ColorClip renders a solid-color video of the requested geometry.
func (s *Synthesizer) ColorClip(term string, duration float64, width, height int, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("fallback_%s_%s.mp4", slugify(term), uuid.NewString()[:8]))
	source := fmt.Sprintf("color=c=%s:s=%dx%d:d=%.2f:r=%d", s.randomColor(), width, height, duration, placeholderFPS)

	err := ffmpeg.Input(source, ffmpeg.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeg.KwArgs{
			"c:v":     "libx264",
			"pix_fmt": "yuv420p",
			"an":      "",
		}).
		OverWriteOutput().Silent(true).Run()
	if err != nil {
		return "", fmt.Errorf("render color clip: %w", err)
	}
	return path, nil
}

// StillClip generates a still image for the term and loops it into a clip of
// the requested geometry, scaling to cover the frame and center-cropping.
func (s *Synthesizer) StillClip(ctx context.Context, term string, duration float64, width, height int, dir string) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("no still generator configured")
	}
	imagePath, err := s.generator.GenerateStill(ctx, term, dir)
	if err != nil {
		return "", fmt.Errorf("generate still: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("generated_%s_%s.mp4", slugify(term), uuid.NewString()[:8]))
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d", width, height, width, height)

	err = ffmpeg.Input(imagePath, ffmpeg.KwArgs{"loop": 1, "t": fmt.Sprintf("%.2f", duration)}).
		Output(path, ffmpeg.KwArgs{
			"vf":      scale,
			"c:v":     "libx264",
			"pix_fmt": "yuv420p",
			"r":       placeholderFPS,
			"an":      "",
		}).
		OverWriteOutput().Silent(true).Run()
	if err != nil {
		return "", fmt.Errorf("render still clip: %w", err)
	}
	return path, nil
}

// PlaceholderBatch produces one placeholder clip per term, up to count. Every
// clip attempts the image-backed variant while generation keeps working; the
// first failure short-circuits image generation for the rest of the batch,
// since a quota or auth problem will not fix itself mid-batch.
func (s *Synthesizer) PlaceholderBatch(ctx context.Context, terms []string, count int, duration float64, width, height int, dir string) []string {
	if count <= 0 {
		return nil
	}
	if len(terms) == 0 {
		terms = []string{"background"}
	}

	out := make([]string, 0, count)
	imageGenFailed := s.generator == nil
	for i := 0; i < count; i++ {
		term := terms[i%len(terms)]

		if !imageGenFailed {
			path, err := s.stillClip(ctx, term, duration, width, height, dir)
			if err == nil {
				out = append(out, path)
				continue
			}
			slog.Warn("image-backed placeholder failed, using solid color for batch", "term", term, "error", err)
			imageGenFailed = true
		}

		path, err := s.colorClip(term, duration, width, height, dir)
		if err != nil {
			slog.Error("failed to render placeholder clip", "term", term, "error", err)
			continue
		}
		out = append(out, path)
	}
	return out
}
