// Package tailer wraps nxadm/tail with a channel interface suited to the
// session loop: plain line strings, a separate error channel, and context
// cancellation.
package tailer

import (
	"context"

	"github.com/nxadm/tail"
)

// errBuffer is the buffer size for the error channel. A small buffer
// prevents error loss while the consumer is busy processing lines.
const errBuffer = 16

// Config controls where tailing starts and how file changes are detected.
type Config struct {
	// FromStart reads the file from the beginning instead of only new lines.
	FromStart bool
	// Poll uses polling instead of inotify; needed on some network
	// filesystems where inotify events never arrive.
	Poll bool
}

// DefaultConfig returns a Config that tails new lines only.
func DefaultConfig() Config {
	return Config{}
}

// Tailer follows a single file and delivers appended lines.
type Tailer struct {
	t     *tail.Tail
	lines chan string
	errs  chan error
}

// New starts tailing path. The file must exist. Lines written to the file
// after the start position are delivered on Lines(); both channels close
// when ctx is cancelled, Stop is called, or tailing fails fatally.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	tailCfg := tail.Config{
		Follow:    true,
		ReOpen:    true, // survive rotation/truncation
		MustExist: true,
		Poll:      cfg.Poll,
		Logger:    tail.DiscardingLogger,
	}
	if !cfg.FromStart {
		tailCfg.Location = &tail.SeekInfo{Offset: 0, Whence: 2}
	}

	t, err := tail.TailFile(path, tailCfg)
	if err != nil {
		return nil, err
	}

	tl := &Tailer{
		t:     t,
		lines: make(chan string),
		errs:  make(chan error, errBuffer),
	}
	go tl.run(ctx)
	return tl, nil
}

// Lines returns the channel of appended lines.
func (tl *Tailer) Lines() <-chan string { return tl.lines }

// Errors returns the channel of non-fatal tailing errors.
func (tl *Tailer) Errors() <-chan error { return tl.errs }

// Stop ends tailing and waits for the internal goroutine to finish.
// Safe to call after context cancellation.
func (tl *Tailer) Stop() error {
	return tl.t.Stop()
}

func (tl *Tailer) run(ctx context.Context) {
	defer close(tl.lines)
	defer close(tl.errs)
	defer tl.t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = tl.t.Stop()
			return
		case line, ok := <-tl.t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				select {
				case tl.errs <- line.Err:
				default: // drop rather than block the tail loop
				}
				continue
			}
			select {
			case tl.lines <- line.Text:
			case <-ctx.Done():
				_ = tl.t.Stop()
				return
			}
		}
	}
}
