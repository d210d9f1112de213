package fetch

import "strings"

// Kind identifies the archive format of a downloaded artifact.
type Kind int

const (
	// KindNone marks artifacts that are not archives (e.g. a standalone
	// installer executable or a license file).
	KindNone Kind = iota

	// KindZip is a .zip archive.
	KindZip

	// KindTarGz is a gzip-compressed tarball (.tar.gz or .tgz).
	KindTarGz

	// KindTarXz is an xz-compressed tarball (.tar.xz).
	KindTarXz
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindTarGz:
		return "tar.gz"
	case KindTarXz:
		return "tar.xz"
	default:
		return "none"
	}
}

// Ext returns the file extension for the kind, including the leading dot.
// KindNone returns an empty string.
func (k Kind) Ext() string {
	switch k {
	case KindZip:
		return ".zip"
	case KindTarGz:
		return ".tar.gz"
	case KindTarXz:
		return ".tar.xz"
	default:
		return ""
	}
}

// KindForPath resolves the archive kind from a path or URL extension.
func KindForPath(path string) Kind {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return KindZip
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return KindTarGz
	case strings.HasSuffix(path, ".tar.xz"):
		return KindTarXz
	default:
		return KindNone
	}
}
