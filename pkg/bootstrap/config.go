package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/TeakSlack/VulkanProjects/pkg/deps"
	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// DefaultConfigFile is looked for in the working directory when no
// explicit config path is given.
const DefaultConfigFile = "setup.toml"

// Config holds every tunable of the bootstrap. Values are resolved once
// at startup (defaults, then an optional TOML overlay) and treated as
// immutable afterwards.
type Config struct {
	// VendorDir is where downloaded tools are installed, relative to the
	// project root.
	VendorDir string `toml:"vendor_dir"`

	Premake PremakeConfig `toml:"premake"`
	Vulkan  VulkanConfig  `toml:"vulkan"`
	Python  PythonConfig  `toml:"python"`
}

// PremakeConfig configures the project generator install.
type PremakeConfig struct {
	Version string `toml:"version"`
}

// VulkanConfig configures the SDK check and install.
type VulkanConfig struct {
	// RequiredVersion is the minimum SDK version an existing install must
	// meet; an older install is reported, never upgraded over.
	RequiredVersion string `toml:"required_version"`

	// InstallVersion is the exact SDK version downloaded when none is
	// found.
	InstallVersion string `toml:"install_version"`

	// Required makes a declined or failed SDK install fatal instead of a
	// warning.
	Required bool `toml:"required"`
}

// PythonConfig configures the interpreter and pip package checks.
type PythonConfig struct {
	Exe      string   `toml:"exe"`
	Packages []string `toml:"packages"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		VendorDir: "vendor",
		Premake: PremakeConfig{
			Version: "5.0.0-beta2",
		},
		Vulkan: VulkanConfig{
			RequiredVersion: "1.3",
			InstallVersion:  "1.3.296.0",
		},
		Python: PythonConfig{
			Exe: defaultPythonExe(),
		},
	}
}

// LoadConfig returns the defaults overlaid with the TOML file at path.
// An empty path means "use DefaultConfigFile if present"; a missing
// default file is not an error, a missing explicit one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, xerrors.Wrap(xerrors.CodeNotFound, err, "config file %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, xerrors.Wrap(xerrors.CodeInternal, err, "parse config file %s", path)
	}
	return cfg, nil
}

// PremakeDescriptor describes the premake install for this configuration.
func (c Config) PremakeDescriptor() deps.Descriptor {
	v := c.Premake.Version
	dir := filepath.Join(c.VendorDir, "premake", "bin")
	return deps.Descriptor{
		Name:           "Premake",
		ArchiveBase:    "premake",
		InstallVersion: v,
		Dir:            dir,
		URLs: map[string]string{
			"windows": fmt.Sprintf("https://github.com/premake/premake-core/releases/download/v%s/premake-%s-windows.zip", v, v),
			"linux":   fmt.Sprintf("https://github.com/premake/premake-core/releases/download/v%s/premake-%s-linux.tar.gz", v, v),
		},
		Markers: map[string]string{
			"windows": filepath.Join(dir, "premake5.exe"),
			"linux":   filepath.Join(dir, "premake5"),
		},
		LicenseURL: "https://raw.githubusercontent.com/premake/premake-core/master/LICENSE.txt",
	}
}

// VulkanDescriptor describes the Vulkan SDK install for this
// configuration.
func (c Config) VulkanDescriptor() deps.Descriptor {
	v := c.Vulkan.InstallVersion
	dir := filepath.Join(c.VendorDir, "VulkanSDK")
	return deps.Descriptor{
		Name:            "Vulkan SDK",
		ArchiveBase:     "vulkan",
		RequiredVersion: c.Vulkan.RequiredVersion,
		InstallVersion:  v,
		EnvVar:          "VULKAN_SDK",
		Dir:             dir,
		URLs: map[string]string{
			"windows": fmt.Sprintf("https://sdk.lunarg.com/sdk/download/%s/windows/VulkanSDK-%s-Installer.exe", v, v),
			"linux":   fmt.Sprintf("https://sdk.lunarg.com/sdk/download/%s/linux/vulkansdk-linux-x86_64-%s.tar.xz", v, v),
		},
		Markers: map[string]string{
			"windows": filepath.Join(`C:\VulkanSDK`, v),
			"linux":   filepath.Join(dir, v, "x86_64"),
		},
		LocalPaths: map[string]string{
			"windows": filepath.Join(`C:\VulkanSDK`, v),
			"linux":   filepath.Join(dir, v, "x86_64"),
		},
		Question: fmt.Sprintf("Would you like to install Vulkan SDK %s? (this may take a while)", v),
	}
}

func defaultPythonExe() string {
	// The Windows installer registers "python"; most Linux distributions
	// only ship "python3".
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}
