// Package deps implements the dependency installer pattern shared by the
// build tool, the graphics SDK, and the language runtime.
//
// Each dependency is described by an immutable [Descriptor] (versions,
// per-OS download URLs, per-OS marker paths) that resolves into a flat
// [Target] for the current platform. An [Installer] then drives the same
// flow for every dependency:
//
//	Validate → presence/version check → consent → Install → re-validate
//
// Presence is always re-derived from the environment and the filesystem;
// nothing is recorded between runs, which makes the whole flow idempotent
// by re-inspection. Consent is a plain function value so the terminal
// interaction lives entirely in the caller.
package deps
