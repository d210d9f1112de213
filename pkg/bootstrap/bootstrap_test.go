package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/TeakSlack/VulkanProjects/pkg/deps"
	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
	"github.com/TeakSlack/VulkanProjects/pkg/fetch"
	"github.com/TeakSlack/VulkanProjects/pkg/platform"
)

// fakeFetcher simulates installs: extracting a premake archive creates
// the premake binary, extracting a vulkan archive creates the SDK tree.
type fakeFetcher struct {
	cfg     Config
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, dest string, progress fetch.Progress) error {
	f.fetched = append(f.fetched, url)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("artifact"), 0o644)
}

func (f *fakeFetcher) Extract(archive string, kind fetch.Kind, deleteAfter bool, progress fetch.Progress) error {
	base := filepath.Base(archive)
	switch {
	case strings.HasPrefix(base, "premake"):
		target, err := f.cfg.PremakeDescriptor().ResolveFor("linux")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target.Marker), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target.Marker, []byte("#!/bin/sh\n"), 0o755); err != nil {
			return err
		}
	case strings.HasPrefix(base, "vulkan"):
		target, err := f.cfg.VulkanDescriptor().ResolveFor("linux")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(target.LocalPath, 0o755); err != nil {
			return err
		}
	}
	if deleteAfter {
		return os.Remove(archive)
	}
	return nil
}

// fakeExec scripts Output results and records Run invocations.
type fakeExec struct {
	outputs map[string]string
	runs    [][]string
}

func (e *fakeExec) Output(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	if out, ok := e.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("command failed")
}

func (e *fakeExec) Run(ctx context.Context, name string, args ...string) error {
	e.runs = append(e.runs, append([]string{name}, args...))
	return nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.VendorDir = filepath.Join(t.TempDir(), "vendor")
	cfg.Python.Exe = "python3"
	return cfg
}

func testRunner(t *testing.T, cfg Config, consent deps.ConsentFunc) (*Runner, *fakeFetcher, *fakeExec) {
	t.Helper()
	profile := filepath.Join(t.TempDir(), ".bashrc")
	plat, err := platform.ResolveFor("linux", "amd64", "/bin/bash", filepath.Dir(profile))
	if err != nil {
		t.Fatal(err)
	}

	ff := &fakeFetcher{cfg: cfg}
	fe := &fakeExec{outputs: map[string]string{
		"python3 --version": "Python 3.11.2",
	}}
	return &Runner{
		Config:   cfg,
		Platform: plat,
		Logger:   log.New(io.Discard),
		Consent:  consent,
		Fetcher:  ff,
		Exec:     fe,
	}, ff, fe
}

func TestRunInstallsAndGenerates(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)
	r, ff, fe := testRunner(t, cfg, func(string) bool { return true })

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Both artifacts plus the premake license were fetched.
	if len(ff.fetched) != 3 {
		t.Errorf("fetched = %v, want premake, license, vulkan", ff.fetched)
	}

	// The SDK was exported into this process.
	wantSDK, _ := filepath.Abs(filepath.Join(cfg.VendorDir, "VulkanSDK", "1.3.296.0", "x86_64"))
	if got := os.Getenv("VULKAN_SDK"); got != wantSDK {
		t.Errorf("VULKAN_SDK = %q, want %q", got, wantSDK)
	}

	// The shell profile gained the source line.
	data, err := os.ReadFile(r.Platform.ShellProfile)
	if err != nil {
		t.Fatalf("read shell profile: %v", err)
	}
	if !strings.Contains(string(data), "setup-env.sh") {
		t.Errorf("shell profile = %q, want a setup-env.sh source line", data)
	}

	// The last command run is premake with the platform toolchain.
	if len(fe.runs) == 0 {
		t.Fatal("no commands run")
	}
	last := fe.runs[len(fe.runs)-1]
	if filepath.Base(last[0]) != "premake5" || last[len(last)-1] != platform.ToolchainGmake2 {
		t.Errorf("generator invocation = %v", last)
	}
}

func TestRunPremakeDeclined(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)
	r, ff, _ := testRunner(t, cfg, func(string) bool { return false })

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded without premake")
	}
	if !xerrors.Is(err, xerrors.CodeConsentDeclined) {
		t.Errorf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeConsentDeclined)
	}
	if len(ff.fetched) != 0 {
		t.Errorf("declined run fetched %v", ff.fetched)
	}
}

func TestRunVulkanDeclinedIsWarning(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)

	var asked []string
	consent := func(q string) bool {
		asked = append(asked, q)
		// Accept premake, decline everything about the SDK.
		return strings.Contains(q, "Premake")
	}
	r, _, fe := testRunner(t, cfg, consent)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Generation still ran, without the SDK.
	if len(fe.runs) == 0 {
		t.Fatal("no commands run")
	}
	if filepath.Base(fe.runs[len(fe.runs)-1][0]) != "premake5" {
		t.Errorf("last command = %v, want premake", fe.runs[len(fe.runs)-1])
	}
}

func TestRunVulkanRequiredDeclined(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)
	cfg.Vulkan.Required = true

	consent := func(q string) bool { return strings.Contains(q, "Premake") }
	r, _, _ := testRunner(t, cfg, consent)

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded without a required SDK")
	}
	if !xerrors.Is(err, xerrors.CodeConsentDeclined) {
		t.Errorf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeConsentDeclined)
	}
}

func TestRunWindowsRestartRequired(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)

	plat, err := platform.ResolveFor("windows", "amd64", "", "")
	if err != nil {
		t.Fatal(err)
	}

	ff := &fakeFetcher{cfg: cfg}
	fe := &fakeExec{outputs: map[string]string{
		"python --version": "Python 3.11.2",
	}}
	cfg.Python.Exe = "python"

	// The premake binary is already present so only the SDK installs.
	premake, err := cfg.PremakeDescriptor().ResolveFor("windows")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(premake.Marker), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(premake.Marker, []byte("MZ"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := &Runner{
		Config:   cfg,
		Platform: plat,
		Logger:   log.New(io.Discard),
		Consent:  func(string) bool { return true },
		Fetcher:  ff,
		Exec:     fe,
	}

	err = r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded, want RESTART_REQUIRED")
	}
	if !xerrors.Is(err, xerrors.CodeRestartRequired) {
		t.Fatalf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeRestartRequired)
	}

	// The interactive installer was launched with the downloaded file.
	if len(fe.runs) != 1 {
		t.Fatalf("runs = %v, want the installer only", fe.runs)
	}
	if !strings.HasSuffix(fe.runs[0][0], ".exe") {
		t.Errorf("installer invocation = %v", fe.runs[0])
	}
}

func TestCheckReportsWithoutSideEffects(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)
	r, ff, fe := testRunner(t, cfg, func(string) bool {
		t.Error("check prompted for consent")
		return false
	})

	statuses, err := r.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("Check() returned %d statuses, want 3", len(statuses))
	}

	byName := map[string]deps.Result{}
	for _, s := range statuses {
		byName[s.Name] = s.Result
	}
	if byName["Python"] != deps.ResultSatisfied {
		t.Errorf("python status = %v", byName["Python"])
	}
	if byName["Premake"] != deps.ResultMissing {
		t.Errorf("premake status = %v", byName["Premake"])
	}
	if byName["Vulkan SDK"] != deps.ResultMissing {
		t.Errorf("vulkan status = %v", byName["Vulkan SDK"])
	}

	if len(ff.fetched) != 0 {
		t.Errorf("check fetched %v", ff.fetched)
	}
	for _, run := range fe.runs {
		t.Errorf("check ran %v", run)
	}
}

func TestClean(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(filepath.Join(cfg.VendorDir, "premake", "bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	r, _, _ := testRunner(t, cfg, nil)
	if err := r.Clean(); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(cfg.VendorDir); !os.IsNotExist(err) {
		t.Error("vendor directory still present")
	}
}

func TestGenerateRequiresVulkanWhenConfigured(t *testing.T) {
	t.Setenv("VULKAN_SDK", "")
	cfg := testConfig(t)
	cfg.Vulkan.Required = true
	r, _, _ := testRunner(t, cfg, nil)

	err := r.Generate(context.Background())
	if err == nil {
		t.Fatal("Generate() succeeded without the SDK")
	}
	if !xerrors.Is(err, xerrors.CodeNotFound) {
		t.Errorf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeNotFound)
	}
}
