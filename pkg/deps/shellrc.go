package deps

import (
	"os"
	"strings"
)

// EnsureLine appends line to the file at path unless an identical line
// (modulo surrounding whitespace) is already present, creating the file
// when missing. Reports whether the line was added.
//
// Re-running the bootstrap therefore never stacks duplicate entries in a
// shell profile.
func EnsureLine(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	want := strings.TrimSpace(line)
	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == want {
			return false, nil
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	prefix := ""
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		prefix = "\n"
	}
	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		return false, err
	}
	return true, nil
}
