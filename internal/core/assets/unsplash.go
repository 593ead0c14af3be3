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

// This file implements the Unsplash provider, the keyless third rung of the
// image cascade. It pulls from the public random-photo endpoint, which has no
// search API and aggressive rate limits, so every request goes through a
// local limiter and the per-term image count is capped.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	unsplashRandomURL = "https://source.unsplash.com/random"

	// unsplashMaxPerTerm caps downloads per search term regardless of what
	// the cascade asks for.
	unsplashMaxPerTerm = 5
)

// UnsplashSource serves images from the public Unsplash random endpoint.
type UnsplashSource struct {
	fetcher *fetcher
	limiter *rate.Limiter
}

// NewUnsplashSource creates an Unsplash provider issuing at most one request
// every two seconds. The client may be nil to use the default timeout-bounded
// client.
func NewUnsplashSource(client *http.Client) *UnsplashSource {
	return &UnsplashSource{
		fetcher: newFetcher(client),
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
	}
}

func (u *UnsplashSource) Name() string { return "unsplash" }

// FetchImages downloads up to max random images matching the term. Each
// request carries a random cache-busting parameter so repeated calls return
// distinct photos.
func (u *UnsplashSource) FetchImages(ctx context.Context, term string, max int, dir string) ([]string, error) {
	if max > unsplashMaxPerTerm {
		max = unsplashMaxPerTerm
	}

	slug := strings.ReplaceAll(term, " ", "_")
	paths := make([]string, 0, max)
	for i := 0; i < max; i++ {
		if err := u.limiter.Wait(ctx); err != nil {
			return paths, err
		}

		query := fmt.Sprintf("%s&random=%s", term, uuid.NewString()[:8])
		imageURL := fmt.Sprintf("%s?%s", unsplashRandomURL, url.QueryEscape(query))
		filename := fmt.Sprintf("unsplash_%s_%d_%s.jpg", slug, i, uuid.NewString()[:8])

		path, err := u.fetcher.download(ctx, imageURL, dir, filename, nil)
		if err != nil {
			slog.Warn("failed to fetch unsplash image", "term", term, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
