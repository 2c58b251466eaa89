package model

import (
	"time"

	"github.com/dlclark/regexp2"
)

type Config struct {
	Name string `gorm:"primary_key"`
	Data string
}

// GuideRun records one guide generation for the status API.
type GuideRun struct {
	ID              uint `gorm:"primary_key"`
	StartedAt       time.Time
	FinishedAt      time.Time
	Channels        int
	Programmes      int
	FailedBatches   int
	SkippedPrograms int
	PairMismatches  int
	Success         bool
	Message         string
}

// GuideConfig is the resolved runtime configuration of the pipeline.
// main assembles it once from the environment and the config table.
type GuideConfig struct {
	BaseURL   string
	LineupID  string
	Days      int
	Location  *time.Location
	Language  string
	UserAgent string
	Output    string
	StreamURL string
	Exclude   *regexp2.Regexp
	ProxyURL  string
}
