package progress

import (
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/minio/pkg/console"
)

// Bar wraps pb.ProgressBar with the harness theme.
type Bar struct {
	*pb.ProgressBar
}

// NewTimerBar - instantiate a bar that tracks elapsed wall-clock time over a
// fixed measurement window. Units are milliseconds.
func NewTimerBar(window time.Duration) *Bar {
	// Progress bar specific theme customization.
	console.SetColor("Bar", color.New(color.FgGreen, color.Bold))

	bar := pb.New64(window.Milliseconds())

	// Customize the refresh rate and behavior
	bar.SetRefreshRate(time.Millisecond * 125)
	bar.SetTemplateString(`{{string . "prefix"}} {{bar . }} {{percent . }}`)

	bar.Start()

	return &Bar{ProgressBar: bar}
}

// SetCaption sets the caption of the progress bar.
func (b *Bar) SetCaption(caption string) *Bar {
	b.ProgressBar.Set("prefix", caption)
	return b
}

// Tick advances the bar to the elapsed time since start.
func (b *Bar) Tick(start time.Time) {
	elapsed := time.Since(start).Milliseconds()
	if elapsed > b.Total() {
		elapsed = b.Total()
	}
	b.SetCurrent(elapsed)
}

// Done fills and stops the bar.
func (b *Bar) Done() {
	b.SetCurrent(b.Total())
	b.Finish()
}
