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

// This file implements the cross-segment filler-word filter. Narrated video
// transcriptions frequently repeat a topic word or verbal tic in nearly every
// sentence; a word that appears in most segments carries no distinguishing
// information on screen and only crowds the caption. The filter is
// statistical: it counts, for each word, the number of distinct segments
// containing it, and removes every word whose segment coverage reaches the
// configured threshold.
package captions

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// DefaultFillerThreshold is the fraction of segments a word must appear in to
// be treated as filler. Empirically chosen; tunable via SuppressorOptions, not
// a design invariant.
const DefaultFillerThreshold = 0.7

// FillerSuppressor removes high-frequency words from every segment of a
// transcript. The zero value is not usable; construct with
// NewFillerSuppressor.
type FillerSuppressor struct {
	threshold float64
}

// NewFillerSuppressor creates a suppressor with the given segment-coverage
// threshold. Values outside (0, 1] fall back to the default.
func NewFillerSuppressor(threshold float64) *FillerSuppressor {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFillerThreshold
	}
	return &FillerSuppressor{threshold: threshold}
}

// Suppress mutates the transcript's text in place, removing every candidate
// filler word from every segment. Transcripts with fewer than 3 segments are
// left untouched: the statistics are meaningless at that size.
func (f *FillerSuppressor) Suppress(transcript model.Transcript) {
	if len(transcript) < 3 {
		return
	}

	// Count each word at most once per segment.
	segmentCounts := make(map[string]int)
	for _, seg := range transcript {
		seen := make(map[string]struct{})
		for _, w := range strings.Fields(strings.ToLower(seg.Text)) {
			seen[w] = struct{}{}
		}
		for w := range seen {
			segmentCounts[w]++
		}
	}

	cutoff := f.threshold * float64(len(transcript))
	fillers := make([]string, 0)
	for w, n := range segmentCounts {
		if float64(n) >= cutoff && len(w) > 1 {
			fillers = append(fillers, w)
		}
	}
	if len(fillers) == 0 {
		return
	}
	slog.Debug("removing filler words from captions", "words", fillers)

	res := make([]*regexp.Regexp, 0, len(fillers))
	for _, w := range fillers {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	for _, seg := range transcript {
		text := seg.Text
		for _, re := range res {
			text = re.ReplaceAllString(text, "")
		}
		seg.Text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	}
}
