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

// This file tests the statistical filler-word filter.
package captions_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Th3Ya0vi/ReelComp/internal/core/captions"
	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// buildTranscript creates n segments, each one second long, with per-segment
// text produced by the supplied function.
func buildTranscript(n int, text func(i int) string) model.Transcript {
	out := make(model.Transcript, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &model.CaptionSegment{
			Text:  text(i),
			Start: float64(i),
			End:   float64(i + 1),
		})
	}
	return out
}

// TestSuppressRemovesHighCoverageWord verifies that a word present in 8 of 10
// segments (above the 0.7 default threshold) is removed from every segment.
func TestSuppressRemovesHighCoverageWord(t *testing.T) {
	transcript := buildTranscript(10, func(i int) string {
		if i < 8 {
			return fmt.Sprintf("basically point%d rose", i)
		}
		return fmt.Sprintf("point%d rose", i)
	})

	captions.NewFillerSuppressor(0).Suppress(transcript)

	for _, seg := range transcript {
		assert.NotContains(t, strings.ToLower(seg.Text), "basically")
	}
	// The remaining words survive untouched. "rose" appears in all ten
	// segments and is removed along with "basically".
	assert.Equal(t, "point0", transcript[0].Text)
}

// TestSuppressKeepsLowCoverageWord verifies that a word present in only 6 of
// 10 segments stays below the threshold and is retained everywhere.
func TestSuppressKeepsLowCoverageWord(t *testing.T) {
	transcript := buildTranscript(10, func(i int) string {
		if i < 6 {
			return fmt.Sprintf("market update %d", i)
		}
		return fmt.Sprintf("update %d", i)
	})

	captions.NewFillerSuppressor(0).Suppress(transcript)

	assert.Contains(t, transcript[0].Text, "market")
	assert.Contains(t, transcript[5].Text, "market")
}

// TestSuppressCountsSegmentsNotOccurrences verifies that repeating a word many
// times inside one segment does not inflate its coverage. Ten mentions in a
// single segment of ten is 10% coverage, not 100%.
func TestSuppressCountsSegmentsNotOccurrences(t *testing.T) {
	transcript := buildTranscript(10, func(i int) string {
		if i == 0 {
			return strings.Repeat("stocks ", 10) + "today"
		}
		return fmt.Sprintf("today number %d", i)
	})

	captions.NewFillerSuppressor(0).Suppress(transcript)

	assert.Contains(t, transcript[0].Text, "stocks")
}

// TestSuppressSmallTranscriptNoOp verifies that transcripts with fewer than 3
// segments are never modified, even when a word appears in all of them.
func TestSuppressSmallTranscriptNoOp(t *testing.T) {
	transcript := buildTranscript(2, func(i int) string {
		return "basically yes"
	})

	captions.NewFillerSuppressor(0).Suppress(transcript)

	assert.Equal(t, "basically yes", transcript[0].Text)
	assert.Equal(t, "basically yes", transcript[1].Text)
}

// TestSuppressIgnoresSingleCharacterWords verifies that one-character tokens
// such as "a" or "I" are exempt no matter how often they appear.
func TestSuppressIgnoresSingleCharacterWords(t *testing.T) {
	transcript := buildTranscript(5, func(i int) string {
		return fmt.Sprintf("a item%d", i)
	})

	captions.NewFillerSuppressor(0).Suppress(transcript)

	assert.Equal(t, "a item0", transcript[0].Text)
}
