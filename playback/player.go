// Package playback wires time-windowed shot playback onto a media player:
// resolve a playback URL, seek to the shot start, stop at the shot end.
package playback

// TimeUpdateFunc receives the current playback position in seconds.
type TimeUpdateFunc func(seconds float64)

// Player is the minimal media surface the binder needs. A Player may be
// rebound to a different shot at any time; implementations only hold the
// latest source and seek position.
type Player interface {
	// SetSource points the player at a new media URL.
	SetSource(url string)
	// Seek positions playback at the given offset in seconds.
	Seek(seconds float64)
	// Pause halts playback.
	Pause()
	// OnTimeUpdate registers a playback-position watcher and returns a
	// function that removes it. Watchers fire on every position change.
	OnTimeUpdate(fn TimeUpdateFunc) (remove func())
}
