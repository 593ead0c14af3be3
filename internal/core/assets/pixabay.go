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

// This file implements the Pixabay provider, the second rung of both
// cascades. Pixabay authenticates with a key query parameter and serves its
// media through a CDN that expects a Referer.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	pixabayImageURL = "https://pixabay.com/api/"
	pixabayVideoURL = "https://pixabay.com/api/videos/"

	// Pixabay rejects queries past 100 characters.
	pixabayMaxTermLen = 100
	pixabayMaxPerPage = 20
)

var pixabayMediaHeaders = map[string]string{"Referer": "https://pixabay.com/"}

// PixabaySource serves both images and videos from the Pixabay API.
type PixabaySource struct {
	apiKey  string
	fetcher *fetcher
}

// NewPixabaySource creates a Pixabay provider. The client may be nil to use
// the default timeout-bounded client.
func NewPixabaySource(apiKey string, client *http.Client) *PixabaySource {
	return &PixabaySource{apiKey: apiKey, fetcher: newFetcher(client)}
}

func (p *PixabaySource) Name() string { return "pixabay" }

// Enabled reports whether the provider has credentials.
func (p *PixabaySource) Enabled() bool { return p.apiKey != "" }

// cleanTerm trims and bounds a search term to what the API accepts.
func cleanTerm(term string) string {
	term = strings.TrimSpace(term)
	if len(term) > pixabayMaxTermLen {
		term = term[:pixabayMaxTermLen]
	}
	return term
}

func (p *PixabaySource) searchURL(base, term string, max int) string {
	q := url.Values{}
	q.Set("key", p.apiKey)
	q.Set("q", term)
	q.Set("safesearch", "true")
	if max > pixabayMaxPerPage {
		max = pixabayMaxPerPage
	}
	q.Set("per_page", fmt.Sprintf("%d", max))
	return base + "?" + q.Encode()
}

type pixabayImageResponse struct {
	Hits []struct {
		ID            int64  `json:"id"`
		LargeImageURL string `json:"largeImageURL"`
		WebformatURL  string `json:"webformatURL"`
	} `json:"hits"`
}

// FetchImages searches Pixabay images and downloads up to max of them,
// preferring the large rendition and falling back to webformat.
func (p *PixabaySource) FetchImages(ctx context.Context, term string, max int, dir string) ([]string, error) {
	term = cleanTerm(term)
	if !p.Enabled() || term == "" {
		return nil, nil
	}

	body, err := p.fetcher.get(ctx, p.searchURL(pixabayImageURL, term, max), nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay image search: %w", err)
	}
	defer body.Close()

	var result pixabayImageResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("pixabay image response: %w", err)
	}

	paths := make([]string, 0, max)
	for _, hit := range result.Hits {
		if len(paths) >= max {
			break
		}
		imageURL := hit.LargeImageURL
		if imageURL == "" {
			imageURL = hit.WebformatURL
		}
		if imageURL == "" {
			continue
		}
		filename := fmt.Sprintf("pixabay_image_%d_%s.jpg", hit.ID, uuid.NewString()[:8])
		path, err := p.fetcher.download(ctx, imageURL, dir, filename, pixabayMediaHeaders)
		if err != nil {
			slog.Warn("failed to download pixabay image", "id", hit.ID, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

type pixabayVideoResponse struct {
	Hits []struct {
		ID     int64 `json:"id"`
		Videos map[string]struct {
			URL string `json:"url"`
		} `json:"videos"`
	} `json:"hits"`
}

// pixabayVideoSizes is the rendition preference order: medium balances
// quality and download size for a 1080x1920 target.
var pixabayVideoSizes = []string{"medium", "small", "large", "tiny"}

// FetchVideos searches Pixabay videos and downloads up to max clips.
func (p *PixabaySource) FetchVideos(ctx context.Context, term string, max int, dir string) ([]string, error) {
	term = cleanTerm(term)
	if !p.Enabled() || term == "" {
		return nil, nil
	}

	body, err := p.fetcher.get(ctx, p.searchURL(pixabayVideoURL, term, max), nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay video search: %w", err)
	}
	defer body.Close()

	var result pixabayVideoResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("pixabay video response: %w", err)
	}

	paths := make([]string, 0, max)
	for _, hit := range result.Hits {
		if len(paths) >= max {
			break
		}

		videoURL := ""
		for _, size := range pixabayVideoSizes {
			if v, ok := hit.Videos[size]; ok && v.URL != "" {
				videoURL = v.URL
				break
			}
		}
		if videoURL == "" {
			slog.Warn("no suitable rendition for pixabay video", "id", hit.ID)
			continue
		}

		filename := fmt.Sprintf("pixabay_video_%d_%s.mp4", hit.ID, uuid.NewString()[:8])
		path, err := p.fetcher.download(ctx, videoURL, dir, filename, pixabayMediaHeaders)
		if err != nil {
			slog.Warn("failed to download pixabay video", "id", hit.ID, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
