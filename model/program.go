package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RunMinutes accepts both the numeric and the quoted form of a
// program duration in minutes.
type RunMinutes int

func (r *RunMinutes) UnmarshalJSON(data []byte) error {
	// A literal null is a missing duration, not a zero-minute one.
	// Unmarshal would accept it as a no-op and leave 0 behind.
	if string(data) == "null" {
		return fmt.Errorf("runTime: cannot decode null")
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RunMinutes(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("runTime: %w", err)
		}
		*r = RunMinutes(n)
		return nil
	}
	return fmt.Errorf("runTime: cannot decode %s", string(data))
}

// Program is a single airing inside a grid response.
type Program struct {
	StartTime string     `json:"startTime"`
	RunTime   RunMinutes `json:"runTime"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Type      string     `json:"type"`
	Flags     []string   `json:"flags"`
}

// GridSlice holds the airings of one channel for one requested window.
// Records stay raw so that a single malformed airing can be dropped
// without losing the rest of the slice.
type GridSlice []json.RawMessage
