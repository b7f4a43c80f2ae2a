package search

import (
	"context"
	"sync/atomic"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/cbsinteractive/video-search-client/exceptions"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned when a newer search started while this one was
// in flight; its results must not be rendered.
var ErrSuperseded = errors.New("superseded by a newer search")

// Orchestrator runs shot searches. Each invocation fully replaces the
// previous result set; there is no accumulation across queries and no
// cancellation of in-flight requests. Instead, every search captures a
// generation number and a completion whose generation is no longer current
// discards its results.
type Orchestrator struct {
	API      client.Client
	Index    string
	Log      *logrus.Logger
	Reporter exceptions.Reporter

	// Searching, when set, receives indicator updates: true right before a
	// request goes out, false as soon as a response (or failure) arrives.
	Searching func(bool)

	gen atomic.Uint64
}

// SearchText runs a free-text query.
func (o *Orchestrator) SearchText(ctx context.Context, query string) ([]ResultViewModel, error) {
	return o.run(func(gen uint64) ([]client.SearchHit, error) {
		return o.API.SearchText(ctx, o.Index, query)
	}, false)
}

// SearchImage runs a similarity query against a still image.
func (o *Orchestrator) SearchImage(ctx context.Context, image []byte, mimeType string) ([]ResultViewModel, error) {
	dataURL := EncodeImageQuery(image, mimeType)
	return o.run(func(gen uint64) ([]client.SearchHit, error) {
		return o.API.SearchImage(ctx, o.Index, dataURL)
	}, false)
}

// SearchClip runs a similarity query against an already-uploaded query
// clip, identified by its storage object name.
func (o *Orchestrator) SearchClip(ctx context.Context, objectName string) ([]ResultViewModel, error) {
	return o.run(func(gen uint64) ([]client.SearchHit, error) {
		return o.API.SearchClip(ctx, o.Index, objectName)
	}, true)
}

func (o *Orchestrator) run(fetch func(gen uint64) ([]client.SearchHit, error), clipMode bool) ([]ResultViewModel, error) {
	gen := o.gen.Add(1)
	o.indicate(gen, true)

	hits, err := fetch(gen)
	o.indicate(gen, false)

	if o.gen.Load() != gen {
		return nil, ErrSuperseded
	}
	if err != nil {
		o.logger().WithError(err).Error("search failed")
		if o.Reporter != nil {
			o.Reporter.ReportException(err)
		}
		return nil, err
	}

	return ViewModels(o.dedupe(hits, clipMode)), nil
}

// dedupe walks hits in server order and keeps the first occurrence of each
// shot; later duplicates are skipped silently.
func (o *Orchestrator) dedupe(hits []client.SearchHit, clipMode bool) []Result {
	seen := map[string]struct{}{}
	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		r := resultFromHit(h, clipMode)
		key := r.dedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, r)
	}
	return results
}

// indicate toggles the searching indicator, unless a newer search owns it.
func (o *Orchestrator) indicate(gen uint64, on bool) {
	if o.Searching == nil || o.gen.Load() != gen {
		return
	}
	o.Searching(on)
}

func (o *Orchestrator) logger() *logrus.Logger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
