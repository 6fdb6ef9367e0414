// Package backend implements the mock inference service behind the HTTP API.
// It is structured into small files by concern:
//
//   - service.go: Service type, constructor, health and model listing.
//   - config.go: Config and package defaults; New applies defaults.
//   - chat.go: Chat entry point replaying the fixture stream.
//   - validate.go: request validation mirroring the backend schema limits.
//   - errors.go: error types and helpers (IsModelNotFound, IsValidation).
//   - events.go / eventpub_memory.go: lifecycle events for observers and tests.
//   - metrics.go: Prometheus counters for served chats.
//
// Everything served comes from a fixtures.Set; there is no real model runtime.
package backend
