package progress

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
)

const barTemplate pb.ProgressBarTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}`

// Tracker reports upload progress on stderr. A quiet tracker only counts.
type Tracker struct {
	bar     *pb.ProgressBar
	start   time.Time
	written atomic.Int64
}

type Summary struct {
	Bytes   int64
	Elapsed time.Duration
}

// BytesPerSecond returns the average throughput of the transfer.
func (s Summary) BytesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Elapsed.Seconds()
}

func NewTracker(name string, total int64, quiet bool) *Tracker {
	return newTracker(name, total, quiet, os.Stderr)
}

func newTracker(name string, total int64, quiet bool, w io.Writer) *Tracker {
	t := &Tracker{start: time.Now()}
	if quiet {
		return t
	}

	if total < 0 {
		total = 0
	}
	bar := pb.New64(total).SetTemplate(barTemplate)
	bar.SetWriter(w)
	bar.Set(pb.Bytes, true)
	bar.Set(pb.SIBytesPrefix, true)
	bar.Set("prefix", "Uploading "+name+": ")
	t.bar = bar.Start()

	return t
}

// Wrap returns a reader that advances the tracker as r is consumed.
func (t *Tracker) Wrap(r io.Reader) io.Reader {
	return &countingReader{r: r, t: t}
}

func (t *Tracker) Finish() Summary {
	if t.bar != nil {
		t.bar.SetCurrent(t.written.Load())
		t.bar.Finish()
	}

	return Summary{
		Bytes:   t.written.Load(),
		Elapsed: time.Since(t.start),
	}
}

type countingReader struct {
	r io.Reader
	t *Tracker
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		total := c.t.written.Add(int64(n))
		if c.t.bar != nil {
			c.t.bar.SetCurrent(total)
		}
	}
	return n, err
}
