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

// This file implements visual style selection for captions: a deterministic
// rule engine mapping text features (length, punctuation, casing) to one of a
// small closed set of named styles, plus pseudo-random assignment of an
// entrance/exit animation variant. Style selection runs only after the
// transcript is fully reconciled, because filler suppression may have changed
// the text the rules inspect.
package captions

import (
	"math/rand"
	"strings"
)

// StyleName identifies one of the closed set of caption styles.
type StyleName string

const (
	StyleStandard  StyleName = "standard"
	StyleHighlight StyleName = "highlight"
	StyleBig       StyleName = "big"
	StyleAccent    StyleName = "accent"
	StyleEmphasis  StyleName = "emphasis"
)

// CaptionStyle is an immutable named record of the rendering attributes for a
// caption. Colors are hex RGB as understood by the compositor.
type CaptionStyle struct {
	Name        StyleName
	Font        string
	FontSize    int
	Color       string
	Background  string  // empty means no backing box
	StrokeColor string
	StrokeWidth float64
}

// Styles is the closed style set, keyed by name. The concrete fonts and
// colors are representative defaults for TikTok-style pop-ups.
var Styles = map[StyleName]CaptionStyle{
	StyleStandard: {
		Name: StyleStandard, Font: "Arial-Bold", FontSize: 60,
		Color: "#FFFFFF", StrokeColor: "#000000", StrokeWidth: 1.5,
	},
	StyleHighlight: {
		Name: StyleHighlight, Font: "Arial-Bold", FontSize: 65,
		Color: "#FFDD33", Background: "#000000B2", StrokeColor: "#000000", StrokeWidth: 1.5,
	},
	StyleBig: {
		Name: StyleBig, Font: "Arial-Bold", FontSize: 75,
		Color: "#FF5555", StrokeColor: "#000000", StrokeWidth: 2,
	},
	StyleAccent: {
		Name: StyleAccent, Font: "Helvetica-Bold", FontSize: 65,
		Color: "#5599FF", Background: "#00000099", StrokeColor: "#000000", StrokeWidth: 1.5,
	},
	StyleEmphasis: {
		Name: StyleEmphasis, Font: "Georgia-Bold", FontSize: 65,
		Color: "#66DDAA", Background: "#00000099", StrokeColor: "#000000", StrokeWidth: 1.5,
	},
}

// Variant names an animation shape. SafeVariants carry no clipping risk at
// frame edges and are the default pool; the full set is opt-in.
type Variant string

const (
	VariantFadeIn     Variant = "fade-in"
	VariantSlideUp    Variant = "slide-up"
	VariantSlideLeft  Variant = "slide-left"
	VariantSlideRight Variant = "slide-right"
	VariantZoomIn     Variant = "zoom-in"
	VariantBounce     Variant = "bounce"
	VariantPop        Variant = "pop"
	VariantTypewriter Variant = "typewriter"
)

// SafeVariants is the default animation pool.
var SafeVariants = []Variant{VariantFadeIn, VariantSlideUp, VariantSlideLeft, VariantSlideRight}

// AllVariants extends the pool with effects that scale or overshoot.
var AllVariants = []Variant{
	VariantFadeIn, VariantSlideUp, VariantSlideLeft, VariantSlideRight,
	VariantZoomIn, VariantBounce, VariantPop, VariantTypewriter,
}

// StyleSelector assigns styles and animation variants to captions. The style
// decision is fully deterministic; the variant draw uses the selector's rand
// source so a seeded selector is reproducible in tests.
type StyleSelector struct {
	rng        *rand.Rand
	useFullSet bool
}

// NewStyleSelector creates a selector drawing variants from the safe pool.
// Pass useFullSet to opt in to the scaling/overshooting variants.
func NewStyleSelector(seed int64, useFullSet bool) *StyleSelector {
	return &StyleSelector{rng: rand.New(rand.NewSource(seed)), useFullSet: useFullSet}
}

// StyleFor maps a caption's text and position in the transcript to a style.
// First match wins:
//  1. Five or fewer words reads as a punchline: highlight.
//  2. Shouting (all caps, trailing "!", or repeated "!"): big.
//  3. Questions: accent.
//  4. Otherwise cycle by index for variety.
func (s *StyleSelector) StyleFor(text string, index int) CaptionStyle {
	wordCount := len(strings.Fields(text))
	if wordCount <= 5 {
		return Styles[StyleHighlight]
	}
	if isAllUpper(text) || strings.HasSuffix(text, "!") || strings.Count(text, "!") > 1 {
		return Styles[StyleBig]
	}
	if strings.HasSuffix(text, "?") {
		return Styles[StyleAccent]
	}
	switch index % 5 {
	case 0:
		return Styles[StyleHighlight]
	case 1:
		return Styles[StyleAccent]
	case 2:
		return Styles[StyleEmphasis]
	case 3:
		return Styles[StyleBig]
	}
	return Styles[StyleStandard]
}

// VariantFor draws an animation variant from the configured pool.
func (s *StyleSelector) VariantFor() Variant {
	pool := SafeVariants
	if s.useFullSet {
		pool = AllVariants
	}
	return pool[s.rng.Intn(len(pool))]
}

// isAllUpper reports whether the text contains at least one letter and every
// letter is uppercase. Pure-punctuation text is not "shouting".
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter && text == strings.ToUpper(text)
}
