package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// transferBar renders download and extraction progress as an inline bar.
//
// It redraws in place with carriage returns instead of running a full
// bubbletea program, since the surrounding pipeline already owns the
// terminal. Unknown totals render as a byte counter only.
type transferBar struct {
	w        io.Writer
	bar      progress.Model
	lastLine int
}

func newTransferBar(w io.Writer) *transferBar {
	return &transferBar{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Update redraws the bar for done bytes out of total. A total of zero
// means the size is unknown. Reaching the total clears the line so log
// output continues cleanly below it.
func (t *transferBar) Update(done, total int64) {
	var line string
	if total > 0 {
		pct := float64(done) / float64(total)
		line = fmt.Sprintf("%s %s / %s", t.bar.ViewAs(pct), humanBytes(done), humanBytes(total))
	} else {
		line = fmt.Sprintf("%s %s", styleBar.Render("..."), humanBytes(done))
	}

	fmt.Fprint(t.w, "\r"+line)
	if pad := t.lastLine - len(line); pad > 0 {
		fmt.Fprint(t.w, strings.Repeat(" ", pad))
	}
	t.lastLine = len(line)

	if total > 0 && done >= total {
		t.clear()
	}
}

func (t *transferBar) clear() {
	fmt.Fprint(t.w, "\r"+strings.Repeat(" ", t.lastLine)+"\r")
	t.lastLine = 0
}

// humanBytes formats a byte count with a binary unit suffix.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
