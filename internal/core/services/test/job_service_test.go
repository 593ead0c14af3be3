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

// Package services_test contains the test suite for the services package.
// This file tests the JobService's query shapes and signed URL handling. URL
// validation runs before any cloud client is touched, so these tests need no
// live backend.
package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Th3Ya0vi/ReelComp/internal/core/services"
	"github.com/zeebo/assert"
)

// TestJobQueriesBindRuntimeValues verifies that the job queries carry only the
// table-name placeholder and take every runtime value as a named parameter, so
// a caller-supplied ID can never rewrite the SQL.
func TestJobQueriesBindRuntimeValues(t *testing.T) {
	assert.Equal(t, 1, strings.Count(services.QryFindJobById, "%"))
	assert.True(t, strings.Contains(services.QryFindJobById, "@id"))
	assert.False(t, strings.Contains(services.QryFindJobById, "'%s'"))

	assert.Equal(t, 1, strings.Count(services.QryRecentJobs, "%"))
	assert.True(t, strings.Contains(services.QryRecentJobs, "@limit"))
}

// TestGenerateSignedURLRejectsNonGCSURL verifies that a render URL without
// the gs:// scheme is rejected before any signing is attempted.
func TestGenerateSignedURLRejectsNonGCSURL(t *testing.T) {
	svc := &services.JobService{SignerEmail: "renders@example.iam.gserviceaccount.com"}

	_, err := svc.GenerateSignedURL(context.Background(), "https://storage.googleapis.com/bucket/render.mp4", time.Minute)
	assert.NotNil(t, err)
}

// TestGenerateSignedURLRejectsBucketOnlyURL verifies that a gs:// URL with no
// object component is rejected.
func TestGenerateSignedURLRejectsBucketOnlyURL(t *testing.T) {
	svc := &services.JobService{SignerEmail: "renders@example.iam.gserviceaccount.com"}

	_, err := svc.GenerateSignedURL(context.Background(), "gs://bucket-only", time.Minute)
	assert.NotNil(t, err)
}
