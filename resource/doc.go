// Package resource dispatches HTTP requests to handler operations under
// format negotiation, per-verb authentication requirements, and allowed-verb
// gating. Handler results flow through an attached view into the shared
// emitter registry; handler failures are translated into structured error
// envelopes and serialised in the negotiated format, never surfaced as
// transport-level error pages.
package resource
