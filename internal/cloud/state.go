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

// Package cloud provides components for interacting with Google Cloud services.
// This file is central to the application's architecture: it initializes and
// holds all the client objects needed to communicate with Google Cloud. It
// acts as a dependency injection container, creating a single shared
// `ServiceClients` struct that is passed throughout the application.
//
// Logic Flow:
//  1. `NewCloudServiceClients` is called at application startup with the
//     loaded configuration.
//  2. It initializes clients for Storage, Pub/Sub, GenAI, BigQuery, and IAM
//     credentials (for signed URLs).
//  3. It reads the configuration to create the Pub/Sub listeners and the
//     rate-limited image models, storing them in maps keyed by logical name.
//  4. Everything is bundled into one ServiceClients struct consumed by the
//     API handlers and the render workflows.
//
// Structs:
//   - ServiceClients: A container struct holding all initialized Google Cloud
//     service clients and service wrappers.
//
// Functions:
//   - Close: A convenience method to gracefully shut down all client connections.
//   - NewCloudServiceClients: A factory function that creates and configures all
//     necessary Google Cloud clients based on the application's configuration.
package cloud

import (
	"context"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"google.golang.org/genai"
)

// ServiceClients is a central container for all clients that talk to external
// Google Cloud services. The struct is created once at startup and shared,
// a simple form of dependency injection that keeps connection management in
// one place.
type ServiceClients struct {
	StorageClient   *storage.Client                   // Client for Google Cloud Storage (GCS).
	PubsubClient    *pubsub.Client                    // Client for Google Cloud Pub/Sub.
	GenAIClient     *genai.Client                     // Client for Generative AI services (Vertex AI).
	BigQueryClient  *bigquery.Client                  // Client for Google Cloud BigQuery.
	IAMClient       *credentials.IamCredentialsClient // Client for IAM, used to sign GCS URLs.
	PubSubListeners map[string]*PubSubListener        // Active Pub/Sub listeners, keyed by logical name from the config.
	ImageModels     map[string]*QuotaAwareImageModel  // Rate-limited image generation models, keyed by logical name.
}

// Close gracefully shuts down the active client connections. Client
// lifecycles are normally tied to the root context; this gives tests and
// controlled shutdowns an explicit release point.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.PubsubClient.Close()
	_ = c.BigQueryClient.Close()
	if c.IAMClient != nil {
		_ = c.IAMClient.Close()
	}
}

// NewCloudServiceClients initializes all required Google Cloud service
// clients based on the provided configuration. It is the single entry point
// for setting up the application's external dependencies.
//
// Inputs:
//   - ctx: The root context.Context for the application, used to manage the lifecycle of the clients.
//   - config: A pointer to the loaded application configuration (`Config`).
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: An error if any of the clients fail to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	pc, err := pubsub.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, err
	}

	bc, err := bigquery.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	iamClient, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		return nil, err
	}

	// Create a listener per configured subscription. The command is attached
	// later, once the workflow chains exist.
	subscriptions := make(map[string]*PubSubListener)
	for subKey, values := range config.TopicSubscriptions {
		actual, err := NewPubSubListener(pc, values.Name, nil)
		if err != nil {
			return nil, err
		}
		subscriptions[subKey] = actual
	}

	// Wrap each configured image model with the rate limiter.
	imageModels := make(map[string]*QuotaAwareImageModel)
	for imKey, values := range config.ImageModels {
		imageModels[imKey] = NewQuotaAwareImageModel(values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		StorageClient:   sc,
		PubsubClient:    pc,
		GenAIClient:     gc,
		BigQueryClient:  bc,
		IAMClient:       iamClient,
		PubSubListeners: subscriptions,
		ImageModels:     imageModels,
	}, nil
}
