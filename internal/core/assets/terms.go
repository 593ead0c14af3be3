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

// Package assets implements the stock-footage acquisition cascade: given the
// search terms for a short, it tries a prioritized list of providers for
// images and background videos, widens the search with curated fallback terms
// on shortfall, and finally synthesizes a placeholder clip locally. The
// cascade never fails; the worst case is a solid-color video.
//
// This file implements search-term preparation. Raw terms straight from a
// script generator search poorly: single words are too broad, bare numbers
// match nothing useful, and topics describing budgeting rules ("50/30/20
// rule") need finance-specific imagery rather than literal matches.
package assets

import (
	"math/rand"
	"strings"
)

// financeKeywords flag a topic as a money/budgeting subject when combined
// with numeric terms.
var financeKeywords = []string{"method", "rule", "budget", "saving", "money"}

// financeImageTerms replace literal terms for numeric finance topics, which
// otherwise return stock photos of the digits themselves.
var financeImageTerms = []string{
	"personal finance concept",
	"money management illustration",
	"budget planning graphic",
	"financial advice chart",
	"saving money illustration",
}

// Background video searches are deliberately decoupled from the topic: B-roll
// works as texture, so abstract footage beats literal matches.
var (
	financeVisualTerms = []string{
		"financial graph animation",
		"money background",
		"business chart background",
		"financial success background",
		"money management video",
	}
	abstractVisualTerms = []string{
		"abstract background", "nature scenery", "colorful pattern",
		"flowing water", "ocean waves", "forest canopy", "clouds timelapse",
		"geometric shapes", "particle effects", "light bokeh",
	}
	financeFallbackTerms = []string{
		"financial success", "money growth animation",
		"savings growth", "budget planning", "finance background",
	}
	abstractFallbackTerms = []string{
		"abstract motion", "slow motion", "gradient background",
		"ambient visuals", "relaxing scenery", "underwater scene",
	}
)

// visualTermSubset is how many shuffled visual terms the video search uses.
const visualTermSubset = 3

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// EnhanceTerms prepares raw search terms for provider queries and reports
// whether the topic was classified as a numeric finance rule.
//
// Finance rules (a digit term plus a finance keyword in the joined topic) are
// replaced wholesale by the curated finance image terms, keeping the full
// topic only when it is descriptive enough. Otherwise terms at most two
// characters long or purely numeric are dropped, remaining single words get a
// " concept" suffix, and the joined topic is appended unless it is itself
// numeric.
func EnhanceTerms(terms []string) (enhanced []string, financial bool) {
	fullTopic := strings.ToLower(strings.Join(terms, " "))

	hasDigit := false
	for _, t := range terms {
		if isDigits(t) {
			hasDigit = true
			break
		}
	}
	if hasDigit {
		for _, kw := range financeKeywords {
			if strings.Contains(fullTopic, kw) {
				financial = true
				break
			}
		}
	}

	if financial {
		enhanced = append(enhanced, financeImageTerms...)
		compact := strings.ReplaceAll(fullTopic, " ", "")
		if !isDigits(compact) && len(strings.TrimSpace(fullTopic)) > 5 {
			enhanced = append(enhanced, fullTopic)
		}
		return enhanced, true
	}

	for _, term := range terms {
		if len(term) <= 2 || isDigits(term) {
			continue
		}
		if len(strings.Fields(term)) == 1 {
			enhanced = append(enhanced, term+" concept")
		} else {
			enhanced = append(enhanced, term)
		}
	}

	// Everything was filtered: fall back to one combined term so the search
	// still has something to work with.
	if len(enhanced) == 0 && len(terms) > 0 {
		keep := make([]string, 0, len(terms))
		for _, t := range terms {
			if len(t) > 1 {
				keep = append(keep, t)
			}
		}
		if combined := strings.Join(keep, " "); combined != "" {
			enhanced = []string{combined}
		} else {
			enhanced = append(enhanced, terms...)
		}
	}

	if !isDigits(fullTopic) && !contains(enhanced, fullTopic) && fullTopic != "" {
		enhanced = append(enhanced, fullTopic)
	}
	return enhanced, false
}

// VisualTerms returns the shuffled subset of background-footage terms for the
// topic class.
func VisualTerms(financial bool, rng *rand.Rand) []string {
	pool := abstractVisualTerms
	if financial {
		pool = financeVisualTerms
	}
	out := shuffled(pool, rng)
	if len(out) > visualTermSubset {
		out = out[:visualTermSubset]
	}
	return out
}

// FallbackVisualTerms returns the shuffled secondary pool used when the
// primary visual terms come up short.
func FallbackVisualTerms(financial bool, rng *rand.Rand) []string {
	pool := abstractFallbackTerms
	if financial {
		pool = financeFallbackTerms
	}
	return shuffled(pool, rng)
}

func shuffled(in []string, rng *rand.Rand) []string {
	out := make([]string, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
