// Package fetch downloads artifacts over HTTP and extracts archives.
//
// # Overview
//
// The bootstrap installs its dependencies from versioned release URLs, so
// this package provides exactly two primitives: a streaming download with
// progress feedback and partial-failure cleanup, and an in-place archive
// extraction that unpacks beside the archive file.
//
// # Downloads
//
// [Fetcher.Fetch] streams the response body to a uniquely named temp file
// next to the destination and renames it into place only after the whole
// body arrived. A failed or interrupted download therefore never leaves a
// truncated file at the destination path, which matters because presence
// checks treat any file at that path as a complete install.
//
// Requests carry a browser user-agent; some SDK download hosts reject
// Go's default client identifier.
//
// # Extraction
//
// [Extract] supports zip, tar.gz, and tar.xz archives and unpacks every
// entry into the directory containing the archive (install targets are
// always laid out beside the fetched file). Entry sizes are summed up
// front so progress is determinate. A failed entry aborts the whole
// extraction but leaves the archive on disk, so the operation can be
// retried without a re-download.
package fetch
