package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Sink observes installation progress. It is purely observational and has
// no effect on control flow; implementations must tolerate any call order.
type Sink interface {
	Begin(total int, label string)
	Advance(n int)
	Finish(label string)
}

// Nop discards all progress events.
type Nop struct{}

func (Nop) Begin(int, string) {}
func (Nop) Advance(int)       {}
func (Nop) Finish(string)     {}

// Bar renders progress as a console bar on stderr.
type Bar struct {
	bar *progressbar.ProgressBar
}

func (b *Bar) Begin(total int, label string) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Bar) Advance(n int) {
	if b.bar != nil {
		_ = b.bar.Add(n)
	}
}

func (b *Bar) Finish(label string) {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
	_, _ = fmt.Fprintln(os.Stderr, label)
}
