package deps

import (
	"path/filepath"
	"strconv"
	"strings"
)

// CompareVersions compares two dotted version strings segment by segment:
// numeric segments by value, anything else byte-wise, with a missing
// segment sorting first. SDK versions are not semver ("1.3.296.0"),
// so this follows the GNU filevercmp convention instead.
//
// Returns a negative value when a < b, zero when equal, positive when a > b.
func CompareVersions(a, b string) int {
	as := splitVersion(a)
	bs := splitVersion(b)

	for i := 0; i < len(as) || i < len(bs); i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if sa == sb {
			continue
		}

		na, aerr := strconv.Atoi(sa)
		nb, berr := strconv.Atoi(sb)
		switch {
		case aerr == nil && berr == nil:
			if na != nb {
				return na - nb
			}
		case sa == "":
			return -1
		case sb == "":
			return 1
		default:
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

// Satisfies reports whether a discovered version meets a required one.
// Required "1.3" is satisfied by "1.3.296.0" but not by "1.2.999".
func Satisfies(found, required string) bool {
	return CompareVersions(found, required) >= 0
}

func splitVersion(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

// VersionFromPath extracts the first version-looking component from an
// install path. SDK layouts embed the version as a directory name, e.g.
// /opt/VulkanSDK/1.3.296.0/x86_64 yields "1.3.296.0". Returns "" when the
// path carries no version.
func VersionFromPath(path string) string {
	parts := strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, part := range parts {
		if part[0] >= '0' && part[0] <= '9' && strings.Contains(part, ".") {
			return part
		}
	}
	return ""
}
