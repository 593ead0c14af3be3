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
// This file defines a generic, reusable Pub/Sub message listener. Receiving
// messages from a subscription is abstracted here, with the actual message
// processing delegated to a "Command" from the Chain of Responsibility
// framework.
//
// Logic Flow:
//  1. An instance of PubSubListener is created with a client and a subscription ID.
//  2. A Command (the workflow chain) is attached to this listener.
//  3. The `Listen` method starts an asynchronous background goroutine.
//  4. Incoming messages are handed to the attached command with the raw
//     payload as the chain's initial input.
//  5. The message is acknowledged only if the command completes without
//     errors, giving at-least-once processing; failed messages redeliver
//     after their acknowledgement deadline per the subscription's policy.
//  6. Each message gets its own OpenTelemetry span.
//
// Structs:
//   - PubSubListener: Manages the connection to a Pub/Sub subscription and holds
//     the command that will process incoming messages.
//
// Functions:
//   - NewPubSubListener: Constructor for creating a new PubSubListener.
//   - SetCommand: Attaches a processing command to the listener.
//   - Listen: Starts the background process to receive and handle messages.
package cloud

import (
	"context"
	"log"

	"cloud.google.com/go/pubsub"
	"github.com/Th3Ya0vi/ReelComp/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PubSubListener encapsulates the components needed to listen to a specific
// Google Cloud Pub/Sub subscription and route its messages into a workflow
// chain. Listeners have a life-cycle independent of individual API requests,
// so they live with the other core cloud components.
type PubSubListener struct {
	client       *pubsub.Client       // The client for interacting with the Pub/Sub service.
	subscription *pubsub.Subscription // The specific subscription this listener will pull messages from.
	command      cor.Command          // The command to execute for each message received.
}

// NewPubSubListener creates a PubSubListener for the given subscription ID.
// The command may be nil at construction time and attached later with
// SetCommand, once the workflow chains are assembled.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (*PubSubListener, error) {
	sub := pubsubClient.Subscription(subscriptionID)
	return &PubSubListener{
		client:       pubsubClient,
		subscription: sub,
		command:      command,
	}, nil
}

// SetCommand attaches a command to the listener. The first attached command
// wins; later calls are ignored so the initial wiring cannot be overwritten
// at runtime.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Listen starts the asynchronous message receiving process in a background
// goroutine. Canceling the context stops the receive loop, which is how
// graceful shutdown reaches the listeners.
func (m *PubSubListener) Listen(ctx context.Context) {
	log.Printf("listening: %s", m.subscription)

	go func() {
		tracer := otel.Tracer("message-listener")

		err := m.subscription.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
			spanCtx, span := tracer.Start(ctx, "receive-message")
			span.SetAttributes(attribute.String("msg", string(msg.Data)))

			// Seed a fresh chain context with the raw payload; the first
			// command in the chain is responsible for decoding it.
			chainCtx := cor.NewBaseContext()
			chainCtx.SetContext(spanCtx)
			chainCtx.Add(cor.CtxIn, string(msg.Data))

			m.command.Execute(chainCtx)

			if !chainCtx.HasErrors() {
				span.SetStatus(codes.Ok, "success")
				msg.Ack()
			} else {
				span.SetStatus(codes.Error, "failed")
				for _, e := range chainCtx.GetErrors() {
					log.Printf("error executing chain: %v", e)
				}
				// No Ack and no Nack: the message redelivers after its
				// acknowledgement deadline expires.
			}

			span.End()
		})

		if err != nil {
			log.Printf("error receiving data: %v", err)
		}
	}()
}
