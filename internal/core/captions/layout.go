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

// This file implements safe on-screen placement for caption text blocks.
//
// Logic Flow:
//  1. Scale the style's font size down for small frames and for long texts
//     (two reduction steps past 30 and 50 characters) to reduce clipping risk.
//  2. Wrap the text into lines no wider than 85% of the frame and measure the
//     resulting block.
//  3. Place the block horizontally centered at 50% of the frame height, then
//     clamp the bounding box into [margin, frame-margin] on both axes
//     (margin = 10% of each dimension).
//  4. Degrade gracefully: if the block cannot fit even at the margin, shrink
//     the font stepwise; if it still cannot fit, fall back to a placeholder
//     shape; if measurement itself fails, return nothing at all. One bad
//     caption must never fail the video.
package captions

import "strings"

// Layout constants.
const (
	maxBlockWidthFraction = 0.85 // text block width cap as a fraction of frame width
	frameMarginFraction   = 0.10 // per-dimension safe margin
	smallFrameHeight      = 1280 // at or below this, mobile-portrait font scaling applies
	smallFrameFontScale   = 0.85
	smallFrameFontFloor   = 40
	longTextThreshold     = 30 // characters; first reduction step
	veryLongTextThreshold = 50 // characters; second reduction step
	longTextFontScale     = 0.9
	minShrinkFontSize     = 24 // below this the shrink ladder gives up
)

// Position is the top-left corner of a caption's bounding box in frame
// pixels.
type Position struct {
	X float64
	Y float64
}

// RenderParams describes a measured, wrapped text block ready for the
// compositor. When Placeholder is set the compositor draws the backing shape
// only; the text could not be laid out safely at any acceptable size.
type RenderParams struct {
	Lines       []string
	FontSize    int
	MaxWidth    int
	BoxWidth    float64
	BoxHeight   float64
	Placeholder bool
}

// TextMeasurer abstracts text measurement so the engine can be driven by real
// font metrics in production and a deterministic estimator in tests.
type TextMeasurer interface {
	// Measure wraps text at maxWidth pixels for the given font size and
	// returns the wrapped lines plus the block's pixel dimensions.
	Measure(text string, fontSize int, maxWidth int) (lines []string, w, h float64, err error)
}

// EstimatingMeasurer approximates proportional-font metrics from the glyph
// count: average advance 0.6em, line height 1.2em. Good enough for layout
// safety margins; the compositor does the exact rasterization.
type EstimatingMeasurer struct{}

func (EstimatingMeasurer) Measure(text string, fontSize int, maxWidth int) ([]string, float64, float64, error) {
	charWidth := 0.6 * float64(fontSize)
	maxChars := int(float64(maxWidth) / charWidth)
	if maxChars < 1 {
		maxChars = 1
	}

	lines := make([]string, 0, 4)
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if len(candidate) <= maxChars || line == "" {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}

	longest := 0
	for _, l := range lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	w := float64(longest) * charWidth
	h := float64(len(lines)) * 1.2 * float64(fontSize)
	return lines, w, h, nil
}

// LayoutEngine computes safe caption placement for a frame size.
type LayoutEngine struct {
	measurer TextMeasurer
}

// NewLayoutEngine creates an engine. A nil measurer selects the estimator.
func NewLayoutEngine(measurer TextMeasurer) *LayoutEngine {
	if measurer == nil {
		measurer = EstimatingMeasurer{}
	}
	return &LayoutEngine{measurer: measurer}
}

// scaledFontSize applies the small-frame and long-text reductions to the
// style's base size.
func scaledFontSize(base int, textLen, frameHeight int) int {
	size := float64(base)
	if frameHeight <= smallFrameHeight {
		size *= smallFrameFontScale
		if size < smallFrameFontFloor {
			size = smallFrameFontFloor
		}
	}
	if textLen > longTextThreshold {
		size *= longTextFontScale
	}
	if textLen > veryLongTextThreshold {
		size *= longTextFontScale
	}
	return int(size)
}

// Layout computes render parameters and a clamped position for a caption.
// A nil, nil return means the caption could not be measured and must be
// dropped; the pipeline continues with the remaining captions.
func (e *LayoutEngine) Layout(text string, style CaptionStyle, frameWidth, frameHeight int) (*RenderParams, *Position) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	maxWidth := int(maxBlockWidthFraction * float64(frameWidth))
	marginX := frameMarginFraction * float64(frameWidth)
	marginY := frameMarginFraction * float64(frameHeight)
	safeW := float64(frameWidth) - 2*marginX
	safeH := float64(frameHeight) - 2*marginY

	fontSize := scaledFontSize(style.FontSize, len(text), frameHeight)

	// Shrink ladder: re-measure at progressively smaller sizes until the
	// block fits the safe area.
	var (
		lines []string
		boxW  float64
		boxH  float64
	)
	fits := false
	for size := fontSize; size >= minShrinkFontSize; size = size * 9 / 10 {
		ls, w, h, err := e.measurer.Measure(text, size, maxWidth)
		if err != nil {
			return nil, nil
		}
		lines, boxW, boxH, fontSize = ls, w, h, size
		if w <= safeW && h <= safeH {
			fits = true
			break
		}
	}

	params := &RenderParams{
		Lines:    lines,
		FontSize: fontSize,
		MaxWidth: maxWidth,
	}
	if !fits {
		// Placeholder shape: a backing box the compositor can still show,
		// sized to the safe area, with no text.
		params.Placeholder = true
		params.Lines = nil
		boxW = safeW
		boxH = 1.2 * float64(fontSize)
	}
	params.BoxWidth = boxW
	params.BoxHeight = boxH

	// Default placement, then clamp the bounding box fully inside the safe
	// area.
	pos := &Position{
		X: (float64(frameWidth) - boxW) / 2,
		Y: 0.5 * float64(frameHeight),
	}
	pos.X = clamp(pos.X, marginX, float64(frameWidth)-marginX-boxW)
	pos.Y = clamp(pos.Y, marginY, float64(frameHeight)-marginY-boxH)
	return params, pos
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
