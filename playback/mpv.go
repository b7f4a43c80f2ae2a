package playback

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const positionPollInterval = 200 * time.Millisecond

// ExecPlayer plays media by launching an external player binary (mpv by
// default). SetSource and Seek stage the next Play invocation; Pause stops
// the running process.
//
// Playback position is approximated from wall-clock time since the process
// started, which is accurate enough to stop at a shot boundary without
// driving the player over an IPC socket.
type ExecPlayer struct {
	Binary string
	Log    *logrus.Logger
	Stdout io.Writer
	Stderr io.Writer

	mu       sync.Mutex
	source   string
	start    float64
	watchers map[int]TimeUpdateFunc
	nextID   int
	cancel   context.CancelFunc
}

func (p *ExecPlayer) SetSource(url string) {
	p.mu.Lock()
	p.source = url
	p.mu.Unlock()
}

func (p *ExecPlayer) Seek(seconds float64) {
	p.mu.Lock()
	p.start = seconds
	p.mu.Unlock()
}

// Pause stops the running player process, if any.
func (p *ExecPlayer) Pause() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (p *ExecPlayer) OnTimeUpdate(fn TimeUpdateFunc) (remove func()) {
	p.mu.Lock()
	if p.watchers == nil {
		p.watchers = map[int]TimeUpdateFunc{}
	}
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.watchers, id)
		p.mu.Unlock()
	}
}

// Play launches the player against the staged source and seek position and
// blocks until playback finishes, Pause is called, or ctx is done. Watchers
// receive position updates while the process runs.
func (p *ExecPlayer) Play(ctx context.Context) error {
	p.mu.Lock()
	source, start := p.source, p.start
	p.mu.Unlock()
	if source == "" {
		return errors.New("no source set")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.binary(), "--really-quiet", fmt.Sprintf("--start=%.3f", start), source)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", p.binary())
	}
	if p.Log != nil {
		p.Log.WithFields(logrus.Fields{"player": p.binary(), "start": start}).Debug("playback started")
	}

	began := time.Now()
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(positionPollInterval)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if runCtx.Err() != nil {
				// Stopped on purpose; the kill error is expected.
				return nil
			}
			return err
		case <-ticker.C:
			p.notify(start + time.Since(began).Seconds())
		}
	}
}

func (p *ExecPlayer) notify(position float64) {
	p.mu.Lock()
	fns := make([]TimeUpdateFunc, 0, len(p.watchers))
	for _, fn := range p.watchers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(position)
	}
}

func (p *ExecPlayer) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "mpv"
}
