package deps

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int // sign only
	}{
		{"1.3.296.0", "1.3.296.0", 0},
		{"1.3.296.0", "1.3", 1},
		{"1.2.999", "1.3", -1},
		{"1.10", "1.9", 1},
		{"5.0.0-beta2", "5.0.0-beta1", 1},
		{"5.0.0-beta2", "5.0.0", 1},
		{"2.0", "10.0", -1},
		{"1.3", "1.3.0", -1},
	}
	for _, tt := range tests {
		got := CompareVersions(tt.a, tt.b)
		if sign(got) != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		found, required string
		want            bool
	}{
		{"1.3.296.0", "1.3", true},
		{"1.3", "1.3", true},
		{"1.2.999", "1.3", false},
		{"2.0", "1.3", true},
	}
	for _, tt := range tests {
		if got := Satisfies(tt.found, tt.required); got != tt.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.found, tt.required, got, tt.want)
		}
	}
}

func TestVersionFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/opt/VulkanSDK/1.3.296.0/x86_64", "1.3.296.0"},
		{`C:\VulkanSDK\1.3.280.0`, "1.3.280.0"},
		{"vendor/VulkanSDK/1.3.296.0/x86_64", "1.3.296.0"},
		{"/usr/local/bin", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VersionFromPath(tt.path); got != tt.want {
			t.Errorf("VersionFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
