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

// Package captions implements the pop-up caption pipeline: cleaning raw
// transcribed segments, suppressing cross-segment filler words, reconciling
// segment timing against the media duration, and assigning styles, safe
// layout, and entrance/exit animation to each surviving caption.
//
// This file implements text normalization for a single segment. Speech
// recognition output routinely contains stage directions in parentheses or
// brackets ("(pause)", "[music]"), direction vocabulary spoken by the script
// generator, stutter artifacts (the same word transcribed twice in a row), and
// irregular whitespace and punctuation. Normalize strips all of it.
//
// Logic Flow:
//  1. Remove every parenthesized and bracketed substring (non-greedy, so
//     "(a) b (c)" keeps "b").
//  2. Remove a fixed vocabulary of direction words and phrases as whole-word,
//     case-insensitive matches.
//  3. Collapse immediately-repeated tokens, compared case-insensitively, to a
//     single occurrence.
//  4. Collapse whitespace runs to one space, collapse consecutive punctuation
//     marks to the first mark, and trim.
//
// Normalize is a pure function: it has no side effects, is safe on empty
// input, and is idempotent (normalizing already-normalized text is a no-op).
package captions

import (
	"regexp"
	"strings"
)

// directionWords are script directions that add no caption value when they
// leak into the transcription. Matched whole-word, case-insensitive.
var directionWords = []string{
	"pause", "emphasis", "music", "sound effect", "sfx",
	"welcome to our video", "intro music", "outro music",
	"fade in", "fade out", "cut to",
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	bracketedRe     = regexp.MustCompile(`\[[^\]]*\]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	// Two punctuation marks separated by optional whitespace collapse to the
	// first mark. Applied repeatedly so longer runs reduce fully.
	punctRunRe   = regexp.MustCompile(`([.,;:!?])\s*[.,;:!?]`)
	directionRes = compileDirectionPatterns()
)

func compileDirectionPatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(directionWords))
	for _, w := range directionWords {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

// Normalize cleans a single segment's text. See the package comment for the
// full rule set.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Stage directions and sound cues.
	text = parentheticalRe.ReplaceAllString(text, "")
	text = bracketedRe.ReplaceAllString(text, "")

	// Direction vocabulary.
	for _, re := range directionRes {
		text = re.ReplaceAllString(text, "")
	}

	// Transcription stutter: "the the market" -> "the market".
	words := strings.Fields(text)
	if len(words) > 1 {
		cleaned := words[:1]
		for i := 1; i < len(words); i++ {
			if !strings.EqualFold(words[i], words[i-1]) {
				cleaned = append(cleaned, words[i])
			}
		}
		text = strings.Join(cleaned, " ")
	}

	// Whitespace and punctuation runs.
	text = whitespaceRe.ReplaceAllString(text, " ")
	for {
		collapsed := punctRunRe.ReplaceAllString(text, "$1")
		if collapsed == text {
			break
		}
		text = collapsed
	}
	return strings.TrimSpace(text)
}
