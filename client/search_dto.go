package client

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type searchRequest struct {
	Type  string `json:"type"`
	Index string `json:"index"`
	Query string `json:"query"`
}

// SearchHit is one shot returned by the search endpoint. The index stores
// shot times and scores inconsistently (sometimes numbers, sometimes
// strings), so the numeric fields tolerate both encodings.
type SearchHit struct {
	JobID          string    `json:"jobId"`
	VideoName      string    `json:"video_name"`
	ShotID         string    `json:"shot_id"`
	StartTimeMs    Millis    `json:"shot_startTime"`
	EndTimeMs      Millis    `json:"shot_endTime"`
	Score          FlexFloat `json:"score"`
	Transcript     string    `json:"shot_transcript"`
	Description    string    `json:"shot_description"`
	PublicFigures  string    `json:"shot_publicFigures"`
	PrivateFigures string    `json:"shot_privateFigures"`
}

// Millis is a millisecond timestamp that decodes from a JSON number or a
// numeric string.
type Millis int64

func (m *Millis) UnmarshalJSON(b []byte) error {
	b = unquote(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*m = Millis(f)
	return nil
}

// FlexFloat decodes from a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = unquote(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func unquote(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return []byte(s)
		}
	}
	return b
}
