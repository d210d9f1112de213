package deps

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
	"github.com/TeakSlack/VulkanProjects/pkg/fetch"
)

// Result is the outcome of validating a dependency.
type Result int

const (
	// ResultSatisfied means the dependency is present at a sufficient
	// version.
	ResultSatisfied Result = iota

	// ResultInstalled means the dependency was missing and was installed
	// during this run.
	ResultInstalled

	// ResultDeclined means the dependency was missing and the user opted
	// out of installing it. No side effects occurred.
	ResultDeclined

	// ResultOutOfDate means the dependency is present but below the
	// required version. It is reported, never upgraded automatically.
	ResultOutOfDate

	// ResultMissing means the dependency is absent. Validate only returns
	// it alongside an error; Status uses it for read-only reporting.
	ResultMissing
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case ResultSatisfied:
		return "satisfied"
	case ResultInstalled:
		return "installed"
	case ResultDeclined:
		return "declined"
	case ResultOutOfDate:
		return "out of date"
	default:
		return "missing"
	}
}

// Acceptable reports whether the pipeline may proceed past a mandatory
// dependency with this result.
func (r Result) Acceptable() bool {
	return r == ResultSatisfied || r == ResultInstalled
}

// ConsentFunc answers a yes/no question. It is the only point of user
// interaction in the whole flow; implementations own the terminal I/O so
// the decision logic stays testable.
type ConsentFunc func(question string) bool

// Fetcher is the download/extract surface installers depend on.
// *fetch.Fetcher satisfies it; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string, progress fetch.Progress) error
	Extract(archive string, kind fetch.Kind, deleteAfter bool, progress fetch.Progress) error
}

// Descriptor is the static description of an installable dependency.
// Constructed once from configuration and never mutated.
type Descriptor struct {
	Name            string            // display name, e.g. "Premake"
	ArchiveBase     string            // base name for the downloaded file, e.g. "premake"
	RequiredVersion string            // minimum acceptable version, "" to skip version checks
	InstallVersion  string            // version the installer downloads
	EnvVar          string            // environment variable announcing presence, "" if none
	Dir             string            // install directory, relative to the project root
	URLs            map[string]string // per-GOOS download URL
	Markers         map[string]string // per-GOOS path whose existence means "installed"
	LocalPaths      map[string]string // per-GOOS well-known install dir, "" entries allowed
	LicenseURL      string            // optional license fetched beside the artifact
	Question        string            // consent prompt, defaulted when empty
}

// Target is a Descriptor resolved against one platform: a flat, immutable
// set of values with no further OS branching.
type Target struct {
	Name            string
	RequiredVersion string
	InstallVersion  string
	EnvVar          string
	Dir             string
	URL             string
	Marker          string
	LocalPath       string
	ArchivePath     string
	Kind            fetch.Kind
	LicenseURL      string
	Question        string
}

// ResolveFor resolves the descriptor for the given GOOS. A descriptor
// with no URL or marker entry for that OS is invalid there and fails with
// PLATFORM_UNSUPPORTED.
func (d Descriptor) ResolveFor(goos string) (Target, error) {
	url, ok := d.URLs[goos]
	if !ok {
		return Target{}, xerrors.New(xerrors.CodePlatformUnsupported, "%s has no download URL for %s", d.Name, goos)
	}
	marker, ok := d.Markers[goos]
	if !ok {
		return Target{}, xerrors.New(xerrors.CodePlatformUnsupported, "%s has no install marker for %s", d.Name, goos)
	}

	base := d.ArchiveBase
	if base == "" {
		base = strings.ToLower(d.Name)
	}
	question := d.Question
	if question == "" {
		question = fmt.Sprintf("Would you like to install %s %s?", d.Name, d.InstallVersion)
	}

	return Target{
		Name:            d.Name,
		RequiredVersion: d.RequiredVersion,
		InstallVersion:  d.InstallVersion,
		EnvVar:          d.EnvVar,
		Dir:             d.Dir,
		URL:             url,
		Marker:          marker,
		LocalPath:       d.LocalPaths[goos],
		ArchivePath:     filepath.Join(d.Dir, fmt.Sprintf("%s-%s-%s%s", base, d.InstallVersion, goos, artifactExt(url))),
		Kind:            fetch.KindForPath(url),
		LicenseURL:      d.LicenseURL,
		Question:        question,
	}, nil
}

// artifactExt returns the extension the local artifact file should carry,
// preserving compound archive extensions.
func artifactExt(url string) string {
	if kind := fetch.KindForPath(url); kind != fetch.KindNone {
		return kind.Ext()
	}
	return filepath.Ext(url)
}
