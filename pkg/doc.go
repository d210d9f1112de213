// Package pkg provides the libraries behind the setup tool.
//
// # Overview
//
// Setup bootstraps a Vulkan development environment: it downloads and
// installs the tools a fresh checkout needs, wires them into the user's
// environment, and generates project files. The pkg directory is
// organized into five areas:
//
//  1. [fetch] - HTTP downloads and archive extraction
//  2. [deps] - Dependency validation and installation
//  3. [platform] - Per-OS parameters (toolchain, shell profile)
//  4. [bootstrap] - Pipeline orchestration and configuration
//  5. [errors] - Structured error codes shared by all layers
//
// # Architecture
//
// The typical flow through a `setup run`:
//
//	Configuration (defaults + setup.toml)
//	         ↓
//	    [platform] package (resolve OS parameters once)
//	         ↓
//	    [deps] package (check → consent → install each dependency)
//	         ↓
//	    [fetch] package (download + extract artifacts)
//	         ↓
//	    [bootstrap] package (activate installs, run premake)
//
// # Quick Start
//
// Validate and install a single dependency:
//
//	import (
//	    "context"
//	    "github.com/TeakSlack/VulkanProjects/pkg/bootstrap"
//	    "github.com/TeakSlack/VulkanProjects/pkg/deps"
//	    "github.com/TeakSlack/VulkanProjects/pkg/fetch"
//	)
//
//	cfg := bootstrap.DefaultConfig()
//	target, _ := cfg.PremakeDescriptor().ResolveFor("linux")
//	ins := &deps.Installer{
//	    Target:  target,
//	    Fetcher: fetch.NewFetcher(),
//	    Consent: func(string) bool { return true },
//	}
//	result, _ := ins.Validate(context.Background())
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/fetch/...    # Specific package
//
// [fetch]: https://pkg.go.dev/github.com/TeakSlack/VulkanProjects/pkg/fetch
// [deps]: https://pkg.go.dev/github.com/TeakSlack/VulkanProjects/pkg/deps
// [platform]: https://pkg.go.dev/github.com/TeakSlack/VulkanProjects/pkg/platform
// [bootstrap]: https://pkg.go.dev/github.com/TeakSlack/VulkanProjects/pkg/bootstrap
// [errors]: https://pkg.go.dev/github.com/TeakSlack/VulkanProjects/pkg/errors
package pkg
