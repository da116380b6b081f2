// Package engine drives sorting procedures at a controllable pace.
//
// The pieces, leaf first:
//
//   - [Tokens]: monotonically increasing run identifiers; issuing one
//     supersedes every run in flight
//   - [Settings]: the shared playback configuration (delay, pause, size)
//   - [Pacer]: suspends a procedure between steps, polls pause and reports
//     whether its token is still current
//   - [Controller]: the start / pause / reset surface used by the TUI and the
//     HTTP server
//
// # Cancellation
//
// Procedures are never interrupted. A run is cancelled only by issuing a new
// token, and the procedure notices at its next yield point. The controller
// serialises token issuance with the procedure's work between yield points,
// so a superseded run performs no write after the reset that superseded it.
//
// # Thread Safety
//
// Controller and Settings are safe for concurrent use. Observers are called
// with the controller lock held and must not call back into the controller.
package engine
