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

// This file tests style and animation-variant selection.
package captions_test

import (
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/stretchr/testify/assert"
)

// TestStyleForShortText verifies the punchline rule: five or fewer words maps
// to highlight regardless of index or punctuation.
func TestStyleForShortText(t *testing.T) {
	s := captions.NewStyleSelector(1, false)
	assert.Equal(t, captions.StyleHighlight, s.StyleFor("buy low sell high", 3).Name)
	assert.Equal(t, captions.StyleHighlight, s.StyleFor("wow", 2).Name)
	// Even a question reads as a punchline when short enough.
	assert.Equal(t, captions.StyleHighlight, s.StyleFor("really now, who knew?", 1).Name)
}

// TestStyleForShouting verifies that all-caps text and exclamation endings map
// to the big style.
func TestStyleForShouting(t *testing.T) {
	s := captions.NewStyleSelector(1, false)
	assert.Equal(t, captions.StyleBig, s.StyleFor("THIS IS THE BIGGEST MOVE OF THE YEAR", 0).Name)
	assert.Equal(t, captions.StyleBig, s.StyleFor("you will not believe what happened next!", 0).Name)
	assert.Equal(t, captions.StyleBig, s.StyleFor("first up! then down! then sideways again", 0).Name)
}

// TestStyleForQuestion verifies that longer questions map to accent.
func TestStyleForQuestion(t *testing.T) {
	s := captions.NewStyleSelector(1, false)
	assert.Equal(t, captions.StyleAccent, s.StyleFor("so what does all of this mean for your savings?", 0).Name)
}

// TestStyleForIndexCycle verifies the fallback rotation for plain text: the
// style depends only on index modulo five.
func TestStyleForIndexCycle(t *testing.T) {
	s := captions.NewStyleSelector(1, false)
	text := "just a plain declarative sentence about the market today"

	expected := []captions.StyleName{
		captions.StyleHighlight,
		captions.StyleAccent,
		captions.StyleEmphasis,
		captions.StyleBig,
		captions.StyleStandard,
	}
	for i, want := range expected {
		assert.Equal(t, want, s.StyleFor(text, i).Name)
		assert.Equal(t, want, s.StyleFor(text, i+5).Name)
	}
}

// TestVariantForPools verifies that the default selector only ever draws from
// the safe pool and that the full set is opt-in.
func TestVariantForPools(t *testing.T) {
	safe := make(map[captions.Variant]bool)
	for _, v := range captions.SafeVariants {
		safe[v] = true
	}

	s := captions.NewStyleSelector(42, false)
	for i := 0; i < 200; i++ {
		assert.True(t, safe[s.VariantFor()])
	}

	// With the full set enabled, the scaling variants eventually appear.
	full := captions.NewStyleSelector(42, true)
	seen := make(map[captions.Variant]bool)
	for i := 0; i < 500; i++ {
		seen[full.VariantFor()] = true
	}
	assert.True(t, seen[captions.VariantZoomIn])
	assert.True(t, seen[captions.VariantPop])
}

// TestVariantForDeterministic verifies that two selectors with the same seed
// draw the same sequence, which keeps renders reproducible.
func TestVariantForDeterministic(t *testing.T) {
	a := captions.NewStyleSelector(7, true)
	b := captions.NewStyleSelector(7, true)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.VariantFor(), b.VariantFor())
	}
}
