package cli

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }}`

// progress renders upload batches as a progress bar.
// A bar is started on the first batch of a write and finished on the last.
type progress struct {
	w   io.Writer
	bar *pb.ProgressBar
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) update(done, total int) {
	if p.bar == nil {
		p.bar = pb.ProgressBarTemplate(progressTemplate).New(total).
			SetWriter(p.w).
			Set("prefix", "uploading batches ").
			Start()
	}
	p.bar.SetCurrent(int64(done))
	if done >= total {
		p.bar.Finish()
		p.bar = nil
	}
}
