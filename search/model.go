// Package search issues text, image and clip queries against the shot index
// and turns the raw hits into deduplicated, display-ready view models.
package search

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/cbsinteractive/video-search-client/client"
)

// Result is one shot hit after wire parsing. It lives for a single search
// pass; the next search replaces the whole set.
type Result struct {
	VideoName   string
	StartTimeMs int64
	EndTimeMs   int64
	HasEndTime  bool
	Score       float64

	Transcript     string
	Description    string
	HasDescription bool
	PublicFigures  string
	PrivateFigures string
}

// dedupKey collapses duplicate shots: two hits for the same video at the
// same start time are the same shot.
func (r Result) dedupKey() string {
	return r.VideoName + strconv.FormatInt(r.StartTimeMs, 10)
}

// resultFromHit converts a wire hit. Clip searches carry no usable shot end
// or description, so those fields are dropped in that mode.
func resultFromHit(h client.SearchHit, clipMode bool) Result {
	r := Result{
		VideoName:      h.VideoName,
		StartTimeMs:    int64(h.StartTimeMs),
		Score:          float64(h.Score),
		Transcript:     h.Transcript,
		PublicFigures:  h.PublicFigures,
		PrivateFigures: h.PrivateFigures,
	}
	if !clipMode {
		r.EndTimeMs = int64(h.EndTimeMs)
		r.HasEndTime = true
		r.Description = h.Description
		r.HasDescription = true
	}
	return r
}

// ResultViewModel is a Result prepared for rendering: formatted timestamps,
// a two-decimal score and placeholder text for missing metadata. StartTimeMs
// and EndTimeMs are kept for playback binding.
type ResultViewModel struct {
	VideoName   string
	StartTimeMs int64
	EndTimeMs   int64
	HasEndTime  bool

	Start           string
	End             string
	DurationSeconds float64
	Score           string

	PublicFigures  string
	PrivateFigures string
	Transcript     string
	Description    string
}

// ViewModels maps results to view models, preserving order. It is a pure
// function; rendering technology stays out of this package.
func ViewModels(results []Result) []ResultViewModel {
	out := make([]ResultViewModel, 0, len(results))
	for _, r := range results {
		vm := ResultViewModel{
			VideoName:      r.VideoName,
			StartTimeMs:    r.StartTimeMs,
			EndTimeMs:      r.EndTimeMs,
			HasEndTime:     r.HasEndTime,
			Start:          FormatTimestamp(r.StartTimeMs),
			Score:          fmt.Sprintf("%.2f", r.Score),
			PublicFigures:  orElse(r.PublicFigures, "None"),
			PrivateFigures: orElse(r.PrivateFigures, "None"),
			Transcript:     orElse(r.Transcript, "Not available"),
		}
		if r.HasDescription {
			vm.Description = orElse(r.Description, "Not available")
		}
		if r.HasEndTime {
			vm.End = FormatTimestamp(r.EndTimeMs)
			vm.DurationSeconds = float64(r.EndTimeMs-r.StartTimeMs) / 1000
		}
		out = append(out, vm)
	}
	return out
}

// FormatTimestamp renders a millisecond offset as hh:mm:ss:mmm.
func FormatTimestamp(ms int64) string {
	hours := (ms / 3600000) % 24
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d:%03d", hours, minutes, seconds, millis)
}

// EncodeImageQuery packs raw image bytes into the base64 data URL the image
// search endpoint expects.
func EncodeImageQuery(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
