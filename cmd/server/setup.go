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

// This file holds the setup and initialization logic for the application's
// state: a centralized manager for the configuration, the Google Cloud
// service clients, and the job service consumed by the API handlers.
//
// Functions:
//   - SetupOS: Points the configuration loader at the right TOML files.
//   - GetConfig: Loads the configuration once and caches it.
//   - InitState: Creates the service clients, the JobService, and starts the
//     Pub/Sub listeners.
package main

import (
	"context"
	"log"
	"os"

	"github.com/Th3Ya0vi/ReelComp/internal/cloud"
	"github.com/Th3Ya0vi/ReelComp/internal/core/services"
)

// StateManager holds the shared dependencies for the application, avoiding
// globals scattered across handlers.
type StateManager struct {
	config     *cloud.Config
	cloud      *cloud.ServiceClients
	jobService *services.JobService
}

// state is the single instance of StateManager for the process.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files: the config directory prefix and the runtime name
// selecting the override file.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides the singleton application configuration, loading it
// from the TOML files on first use.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		state.config = config
	}
	return state.config
}

// InitState initializes the application state: the Google Cloud clients, the
// job service, and the background listeners that drive the workflows.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	state.jobService = &services.JobService{
		BigqueryClient: cloudClients.BigQueryClient,
		StorageClient:  cloudClients.StorageClient,
		IAMClient:      cloudClients.IAMClient,
		SignerEmail:    config.Application.SignerServiceAccountEmail,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		JobsTable:      config.BigQueryDataSource.JobsTable,
	}

	SetupListeners(config, cloudClients, ctx)
}
