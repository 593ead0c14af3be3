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

// Package services contains the business logic for interacting with data
// sources. This file defines the JobService, the data access layer for
// shorts job records in BigQuery and for the signed GCS URLs that let
// clients stream finished renders without credentials of their own.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/Th3Ya0vi/ReelComp/internal/core/model"
)

// JobService encapsulates the clients and configuration for job lookups and
// render streaming.
type JobService struct {
	BigqueryClient *bigquery.Client
	StorageClient  *storage.Client
	IAMClient      *credentials.IamCredentialsClient
	SignerEmail    string // service account that performs the URL signing
	DatasetName    string
	JobsTable      string
}

// GetFQN returns the fully qualified, dot-separated name of the jobs table
// for use in standard SQL.
func (s *JobService) GetFQN() string {
	fqn := s.BigqueryClient.Dataset(s.DatasetName).Table(s.JobsTable).FullyQualifiedName()
	return strings.Replace(fqn, ":", ".", -1)
}

// Get retrieves a single job record by its unique ID. The ID is bound as a
// query parameter, never spliced into the SQL.
func (s *JobService) Get(ctx context.Context, id string) (*model.ShortsJob, error) {
	q := s.BigqueryClient.Query(fmt.Sprintf(QryFindJobById, s.GetFQN()))
	q.Parameters = []bigquery.QueryParameter{{Name: "id", Value: id}}
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	job := &model.ShortsJob{}
	if err := itr.Next(job); err != nil {
		return nil, err
	}
	return job, nil
}

// Recent returns the newest job records, most recent first.
func (s *JobService) Recent(ctx context.Context, limit int) ([]*model.ShortsJob, error) {
	q := s.BigqueryClient.Query(fmt.Sprintf(QryRecentJobs, s.GetFQN()))
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: int64(limit)}}
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.ShortsJob, 0, limit)
	for {
		job := &model.ShortsJob{}
		err := itr.Next(job)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, nil
}

// GenerateSignedURL creates a time-limited GET URL for a render stored in
// GCS. The input is the gs:// URL persisted on the job record. Signing runs
// through the IAM Credentials API, so the service needs no local private key;
// the signer service account only needs the signBlob permission.
func (s *JobService) GenerateSignedURL(ctx context.Context, gcsURL string, expires time.Duration) (string, error) {
	const prefix = "gs://"
	if !strings.HasPrefix(gcsURL, prefix) {
		return "", fmt.Errorf("invalid GCS URL format: %s", gcsURL)
	}
	parts := strings.SplitN(strings.TrimPrefix(gcsURL, prefix), "/", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid GCS URL: unable to determine bucket and object from %s", gcsURL)
	}
	bucketName, objectName := parts[0], parts[1]

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		Expires:        time.Now().Add(expires),
		GoogleAccessID: s.SignerEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			req := &credentialspb.SignBlobRequest{
				Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", s.SignerEmail),
				Payload: b,
			}
			resp, err := s.IAMClient.SignBlob(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("IAMClient.SignBlob: %w", err)
			}
			return resp.SignedBlob, nil
		},
	}

	u, err := s.StorageClient.Bucket(bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", fmt.Errorf("Bucket(%q).Object(%q).SignedURL: %w", bucketName, objectName, err)
	}
	return u, nil
}
