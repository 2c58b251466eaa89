package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"tvtv2xmltv/model"
)

// The grid endpoint accepts at most this many stations per request.
const gridBatchSize = 20

// dayWindow returns the request boundaries for one broadcast day,
// 04:00Z on the target date until 03:59Z on the following one. The
// date is anchored to UTC so a run crossing local midnight still
// produces consecutive windows.
func dayWindow(base time.Time, offset int) (string, string) {
	day := base.UTC().AddDate(0, 0, offset)
	start := day.Format("2006-01-02") + "T04:00:00.000Z"
	end := day.AddDate(0, 0, 1).Format("2006-01-02") + "T03:59:00.000Z"
	return start, end
}

// DayGrid is the raw grid of one broadcast day, one slice of airings
// per station in request order.
type DayGrid struct {
	Slices        []model.GridSlice
	FailedBatches int
	Mismatches    int
}

// FetchGridDay collects one broadcast day of airings for the given
// stations in batches. A failed batch is skipped, its stations
// contribute nothing and later stations shift up in the grid.
func FetchGridDay(f *Fetcher, cfg *model.GuideConfig, base time.Time, offset int, stations []string) *DayGrid {
	grid := &DayGrid{}
	start, end := dayWindow(base, offset)
	total := (len(stations) + gridBatchSize - 1) / gridBatchSize
	for i := 0; i < len(stations); i += gridBatchSize {
		batch := stations[i:min(i+gridBatchSize, len(stations))]
		zap.S().Infof("fetching batch %d/%d", i/gridBatchSize+1, total)
		gridURL := fmt.Sprintf("%s/api/v1/lineup/%s/grid/%s/%s/%s",
			cfg.BaseURL, cfg.LineupID, start, end, strings.Join(batch, ","))
		var slices []model.GridSlice
		if err := f.GetJSON(gridURL, &slices); err != nil {
			zap.S().Warnf("grid batch failed: %v", err)
			grid.FailedBatches++
			continue
		}
		if len(slices) != len(batch) {
			zap.S().Warnf("grid returned %d slices for %d stations, later channels may misalign", len(slices), len(batch))
			grid.Mismatches++
		}
		grid.Slices = append(grid.Slices, slices...)
	}
	return grid
}
