package deps

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
	"github.com/TeakSlack/VulkanProjects/pkg/fetch"
)

// Installer validates and installs one archive-packaged dependency.
//
// All collaborators are injected: the fetcher, the consent function, the
// progress sink, and an optional activation hook that runs after the
// artifact landed (environment export, shell-profile wiring, or handing
// off to an interactive installer).
type Installer struct {
	Target   Target
	Fetcher  Fetcher
	Consent  ConsentFunc
	Logger   *log.Logger
	Progress fetch.Progress

	// Activate performs post-install environment wiring. It may return a
	// RESTART_REQUIRED error when the install cannot take effect in the
	// current process.
	Activate func(ctx context.Context, t Target) error
}

// Status reports the dependency's presence without prompting, installing,
// or mutating anything. It returns the result and, when present, where
// the dependency was found.
//
// Presence is checked in priority order: the environment variable, the
// well-known local install path, then the marker file. Checking the local
// path before the marker lets a prior run's install be rediscovered even
// when no environment variable is set.
func (ins *Installer) Status() (Result, string) {
	loc, ok := ins.locate()
	if !ok {
		return ResultMissing, ""
	}
	if ins.Target.RequiredVersion != "" {
		if v := VersionFromPath(loc); v != "" && !Satisfies(v, ins.Target.RequiredVersion) {
			return ResultOutOfDate, loc
		}
	}
	return ResultSatisfied, loc
}

// Validate runs the full check-consent-install flow.
//
// A present, sufficient dependency short-circuits to ResultSatisfied with
// no side effects, so back-to-back calls are idempotent. An out-of-date
// dependency is reported but never reinstalled over. A missing dependency
// triggers the consent prompt; declining returns ResultDeclined without
// touching the network or the filesystem.
func (ins *Installer) Validate(ctx context.Context) (Result, error) {
	res, loc := ins.Status()
	switch res {
	case ResultSatisfied:
		ins.logger().Info("dependency satisfied", "name", ins.Target.Name, "path", loc)
		return ResultSatisfied, nil
	case ResultOutOfDate:
		ins.logger().Warn("dependency out of date",
			"name", ins.Target.Name, "path", loc, "required", ins.Target.RequiredVersion)
		return ResultOutOfDate, nil
	}

	ins.logger().Warn("dependency not found", "name", ins.Target.Name)
	if ins.Consent == nil || !ins.Consent(ins.Target.Question) {
		return ResultDeclined, nil
	}

	if err := ins.Install(ctx); err != nil {
		return ResultMissing, err
	}

	if res, _ := ins.Status(); res != ResultSatisfied {
		return ResultMissing, xerrors.New(xerrors.CodeInternal, "%s still missing after install", ins.Target.Name)
	}
	return ResultInstalled, nil
}

// Install fetches the artifact, extracts it when it is an archive,
// fetches the license file when configured, and runs the activation hook.
func (ins *Installer) Install(ctx context.Context) error {
	t := ins.Target

	ins.logger().Info("downloading", "name", t.Name, "url", t.URL)
	if err := ins.Fetcher.Fetch(ctx, t.URL, t.ArchivePath, ins.Progress); err != nil {
		return err
	}

	if t.Kind != fetch.KindNone {
		ins.logger().Info("extracting", "archive", filepath.Base(t.ArchivePath))
		if err := ins.Fetcher.Extract(t.ArchivePath, t.Kind, true, ins.Progress); err != nil {
			return err
		}
	}

	if t.LicenseURL != "" {
		if err := ins.Fetcher.Fetch(ctx, t.LicenseURL, filepath.Join(t.Dir, "LICENSE.txt"), nil); err != nil {
			return err
		}
	}

	if ins.Activate != nil {
		return ins.Activate(ctx, t)
	}
	return nil
}

func (ins *Installer) locate() (string, bool) {
	t := ins.Target
	if t.EnvVar != "" {
		if v := os.Getenv(t.EnvVar); v != "" {
			return v, true
		}
	}
	if t.LocalPath != "" {
		if info, err := os.Stat(t.LocalPath); err == nil && info.IsDir() {
			return t.LocalPath, true
		}
	}
	if t.Marker != "" {
		if _, err := os.Stat(t.Marker); err == nil {
			return t.Marker, true
		}
	}
	return "", false
}

func (ins *Installer) logger() *log.Logger {
	if ins.Logger != nil {
		return ins.Logger
	}
	return log.Default()
}
