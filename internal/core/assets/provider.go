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

// This file defines the provider contracts for the acquisition cascade and
// the shared HTTP download plumbing all stock providers use.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// userAgent is sent on every provider request. Some stock CDNs reject
// requests without a browser-like agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// defaultProviderTimeout bounds a single provider search or download.
const defaultProviderTimeout = 10 * time.Second

// ImageSource searches one stock provider for still images, downloads up to
// max of them into dir, and returns the local paths. An empty slice with a
// nil error means the provider had no results; the cascade advances either
// way.
type ImageSource interface {
	Name() string
	FetchImages(ctx context.Context, term string, max int, dir string) ([]string, error)
}

// VideoSource is the video counterpart of ImageSource.
type VideoSource interface {
	Name() string
	FetchVideos(ctx context.Context, term string, max int, dir string) ([]string, error)
}

// StillGenerator produces a single generated image for a prompt. It backs the
// last image rung of the cascade and the optional placeholder base image.
type StillGenerator interface {
	GenerateStill(ctx context.Context, prompt string, dir string) (string, error)
}

// fetcher is the shared HTTP client wrapper for providers.
type fetcher struct {
	client *http.Client
}

func newFetcher(client *http.Client) *fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultProviderTimeout}
	}
	return &fetcher{client: client}
}

// get issues a GET with provider headers and hands the body to the caller.
// Non-200 statuses are errors carrying the status code.
func (f *fetcher) get(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// download streams a URL to a file in dir and returns the file's path. The
// partial file is removed on error so the cascade never hands out truncated
// media.
func (f *fetcher) download(ctx context.Context, url, dir, filename string, headers map[string]string) (string, error) {
	body, err := f.get(ctx, url, headers)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(dir, filename)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
