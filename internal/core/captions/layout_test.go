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

// This file tests the safe layout engine against a standard 1080x1920
// vertical frame.
package captions_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/stretchr/testify/assert"
)

const (
	frameW = 1080
	frameH = 1920
)

// failingMeasurer simulates a font-metrics failure.
type failingMeasurer struct{}

func (failingMeasurer) Measure(string, int, int) ([]string, float64, float64, error) {
	return nil, 0, 0, errors.New("font not available")
}

// TestLayoutContainment verifies the core safety property: for a range of
// texts and styles, the returned bounding box always lies fully inside the
// 10% margins.
func TestLayoutContainment(t *testing.T) {
	engine := captions.NewLayoutEngine(nil)
	texts := []string{
		"hi",
		"a medium length caption here",
		"an extremely long caption that keeps going on and on and really should wrap over several lines before it fits",
		strings.Repeat("verylongword ", 20),
	}

	marginX := 0.10 * float64(frameW)
	marginY := 0.10 * float64(frameH)

	for _, text := range texts {
		for _, style := range captions.Styles {
			params, pos := engine.Layout(text, style, frameW, frameH)
			assert.NotNil(t, params, "text %q", text)
			assert.NotNil(t, pos, "text %q", text)

			assert.GreaterOrEqual(t, pos.X, marginX)
			assert.GreaterOrEqual(t, pos.Y, marginY)
			assert.LessOrEqual(t, pos.X+params.BoxWidth, float64(frameW)-marginX+1e-9)
			assert.LessOrEqual(t, pos.Y+params.BoxHeight, float64(frameH)-marginY+1e-9)
		}
	}
}

// TestLayoutFontScaling verifies the long-text reductions: past 30 characters
// the font shrinks once, past 50 it shrinks again, so a longer text never gets
// a larger font than a shorter one in the same style.
func TestLayoutFontScaling(t *testing.T) {
	engine := captions.NewLayoutEngine(nil)
	style := captions.Styles[captions.StyleStandard]

	short, _ := engine.Layout("short caption", style, frameW, frameH)
	long, _ := engine.Layout("this caption has clearly more than thirty characters", style, frameW, frameH)

	assert.NotNil(t, short)
	assert.NotNil(t, long)
	assert.Greater(t, short.FontSize, long.FontSize)
}

// TestLayoutSmallFrameFloor verifies that the mobile scale-down never pushes
// the font below the 40px floor on small frames.
func TestLayoutSmallFrameFloor(t *testing.T) {
	engine := captions.NewLayoutEngine(nil)
	style := captions.CaptionStyle{Name: captions.StyleStandard, FontSize: 42}

	params, _ := engine.Layout("tiny frame text", style, 360, 640)

	assert.NotNil(t, params)
	assert.GreaterOrEqual(t, params.FontSize, 40)
}

// TestLayoutMeasureFailure verifies the failure policy: when measurement
// fails the caption yields no layout at all and the caller drops it.
func TestLayoutMeasureFailure(t *testing.T) {
	engine := captions.NewLayoutEngine(failingMeasurer{})

	params, pos := engine.Layout("anything", captions.Styles[captions.StyleStandard], frameW, frameH)

	assert.Nil(t, params)
	assert.Nil(t, pos)
}

// TestLayoutEmptyText verifies that blank text produces no layout.
func TestLayoutEmptyText(t *testing.T) {
	engine := captions.NewLayoutEngine(nil)

	params, pos := engine.Layout("   ", captions.Styles[captions.StyleBig], frameW, frameH)

	assert.Nil(t, params)
	assert.Nil(t, pos)
}
