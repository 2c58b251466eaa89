package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
)

// An empty lineup means the id is wrong or the service is broken,
// there is nothing useful to generate from it.
var ErrEmptyLineup = errors.New("lineup has no channels")

// FetchLineup loads the channel table of the configured lineup,
// dropping entries whose call sign matches the exclusion rule.
func FetchLineup(f *Fetcher, cfg *model.GuideConfig) (*syncx.HashedSlice[model.Channel], error) {
	lineupURL := fmt.Sprintf("%s/api/v1/lineup/%s/channels", cfg.BaseURL, cfg.LineupID)
	zap.S().Infof("fetching lineup from %s", lineupURL)
	var channels []model.Channel
	if err := f.GetJSON(lineupURL, &channels); err != nil {
		return nil, fmt.Errorf("lineup %s: %w", cfg.LineupID, err)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("lineup %s: %w", cfg.LineupID, ErrEmptyLineup)
	}
	lineup := syncx.NewHashedSlice[model.Channel]()
	excluded := 0
	for _, ch := range channels {
		if cfg.Exclude != nil {
			if matched, _ := cfg.Exclude.MatchString(ch.CallSign); matched {
				excluded++
				zap.S().Debugf("excluding channel %s (%s)", ch.ChannelNumber, ch.CallSign)
				continue
			}
		}
		// Simulcasts list one station under several channel numbers,
		// every entry keeps its own slot in the grid request.
		lineup.Add(ch)
	}
	if excluded > 0 {
		zap.S().Infof("excluded %d of %d channels", excluded, len(channels))
	}
	return lineup, nil
}
