// Package model defines the provider-agnostic abstraction the session engine
// uses to generate assistant turns, plus a deterministic MockModel for tests
// and examples.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Keep the channel-based Generate contract so providers can stream later
//     without breaking callers that only want the final response
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so the engine remains decoupled from vendor SDKs.
package model
