package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"zero", 0, "00:00:00:000"},
		{"sub second", 417, "00:00:00:417"},
		{"one second", 1000, "00:00:01:000"},
		{"minute boundary", 61000, "00:01:01:000"},
		{"hours with millis", 3661001, "01:01:01:001"},
		{"hours wrap at day", 25 * 3600000, "01:00:00:000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.ms))
		})
	}
}

func TestViewModels(t *testing.T) {
	results := []Result{
		{
			VideoName:      "a.mp4",
			StartTimeMs:    1000,
			EndTimeMs:      5000,
			HasEndTime:     true,
			Score:          0.8765,
			Transcript:     "hello there",
			Description:    "a greeting",
			HasDescription: true,
			PublicFigures:  "Jane Doe",
		},
		{
			VideoName:   "b.mp4",
			StartTimeMs: 2000,
			Score:       0.5,
		},
	}

	vms := ViewModels(results)
	if len(vms) != 2 {
		t.Fatalf("len(vms) = %d, want 2", len(vms))
	}

	full := vms[0]
	assert.Equal(t, "00:00:01:000", full.Start)
	assert.Equal(t, "00:00:05:000", full.End)
	assert.Equal(t, 4.0, full.DurationSeconds)
	assert.Equal(t, "0.88", full.Score)
	assert.Equal(t, "Jane Doe", full.PublicFigures)
	assert.Equal(t, "None", full.PrivateFigures)
	assert.Equal(t, "hello there", full.Transcript)
	assert.Equal(t, "a greeting", full.Description)

	sparse := vms[1]
	assert.Equal(t, "00:00:02:000", sparse.Start)
	assert.Empty(t, sparse.End, "no end time means no formatted end")
	assert.Zero(t, sparse.DurationSeconds)
	assert.Equal(t, "None", sparse.PublicFigures)
	assert.Equal(t, "Not available", sparse.Transcript)
	assert.Empty(t, sparse.Description, "description stays absent without the flag")
}

func TestViewModelsClipModeHidesEndAndDescription(t *testing.T) {
	r := resultFromHit(hit("a.mp4", 1000, 5000), true)
	assert.False(t, r.HasEndTime)
	assert.False(t, r.HasDescription)

	vm := ViewModels([]Result{r})[0]
	assert.Empty(t, vm.End)
	assert.Empty(t, vm.Description)
	assert.Zero(t, vm.DurationSeconds)
}

func TestEncodeImageQuery(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AAEC", EncodeImageQuery([]byte{0, 1, 2}, "image/png"))
	assert.Equal(t, "data:image/jpeg;base64,AAEC", EncodeImageQuery([]byte{0, 1, 2}, ""), "jpeg is the default type")
}
