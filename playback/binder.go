package playback

import (
	"context"
	"sync"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Binder binds shot time windows onto players. It remembers which player
// carries which end-of-shot watcher so that rebinding the same player never
// stacks watchers.
type Binder struct {
	API client.Client
	Log *logrus.Logger

	mu       sync.Mutex
	watchers map[Player]func()
}

// Bind resolves a playback URL for videoName, points the player at it and
// seeks to just past startMs. When endMs is positive, a watcher pauses the
// player once playback reaches the shot end and then removes itself. Any
// watcher left on the player by an earlier Bind is removed first.
func (b *Binder) Bind(ctx context.Context, p Player, videoName string, startMs, endMs int64) error {
	url, err := b.API.PlaybackURL(ctx, videoName)
	if err != nil {
		return errors.Wrapf(err, "resolving playback URL for %q", videoName)
	}

	b.detach(p)

	p.SetSource(url)
	// The +1ms nudge keeps the seek from landing exactly on a keyframe
	// boundary.
	p.Seek(float64(startMs+1) / 1000)

	if endMs > 0 {
		end := float64(endMs) / 1000
		var once sync.Once
		var remove func()
		remove = p.OnTimeUpdate(func(seconds float64) {
			if seconds >= end {
				once.Do(func() {
					p.Pause()
					remove()
					b.forget(p)
				})
			}
		})
		b.remember(p, remove)
	}

	if b.Log != nil {
		b.Log.WithFields(logrus.Fields{"object": videoName, "startMs": startMs, "endMs": endMs}).Debug("playback bound")
	}
	return nil
}

// detach removes the watcher currently attached to p, if any.
func (b *Binder) detach(p Player) {
	b.mu.Lock()
	remove := b.watchers[p]
	delete(b.watchers, p)
	b.mu.Unlock()
	if remove != nil {
		remove()
	}
}

func (b *Binder) remember(p Player, remove func()) {
	b.mu.Lock()
	if b.watchers == nil {
		b.watchers = map[Player]func(){}
	}
	b.watchers[p] = remove
	b.mu.Unlock()
}

func (b *Binder) forget(p Player) {
	b.mu.Lock()
	delete(b.watchers, p)
	b.mu.Unlock()
}
