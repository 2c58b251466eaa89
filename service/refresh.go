package service

import (
	"sync/atomic"

	"github.com/LgoLgo/geentrant"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"tvtv2xmltv/global"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
)

var updateConcurrent = &greetrant.RecursiveMutex{}
var refreshing atomic.Bool

var currentLineup atomic.Pointer[syncx.HashedSlice[model.Channel]]

// CurrentLineup returns the lineup of the latest refresh, nil before
// the first one succeeds.
func CurrentLineup() *syncx.HashedSlice[model.Channel] {
	return currentLineup.Load()
}

func Refreshing() bool {
	return refreshing.Load()
}

// RefreshGuide runs the pipeline, rewrites the output file and swaps
// the served artifacts. Concurrent calls serialize on one lock.
func RefreshGuide(cfg *model.GuideConfig) (*Guide, error) {
	updateConcurrent.Lock()
	refreshing.Store(true)
	defer func() {
		refreshing.Store(false)
		updateConcurrent.Unlock()
	}()

	ResetStatus()
	guide, err := WriteGuide(cfg)
	if err != nil {
		zap.S().Errorf("guide refresh: %v", err)
	}
	if len(guide.Data) > 0 {
		global.GuideCache.Set("guide.xml", guide.Data, cache.DefaultExpiration)
	}
	if guide.Lineup != nil {
		currentLineup.Store(guide.Lineup)
		global.GuideCache.Set("lineup.m3u", M3UGenerate(cfg, guide.Lineup), cache.DefaultExpiration)
		global.GuideCache.Set("lineup.txt", TXTGenerate(cfg, guide.Lineup), cache.DefaultExpiration)
	}
	saveRun(&guide.Run)
	return guide, err
}

func saveRun(run *model.GuideRun) {
	if global.DB == nil {
		return
	}
	if err := global.DB.Create(run).Error; err != nil {
		zap.S().Warnf("failed to record guide run: %v", err)
	}
}

// RunHistory returns the most recent guide runs, newest first.
func RunHistory(limit int) []model.GuideRun {
	var runs []model.GuideRun
	if global.DB != nil {
		global.DB.Order("id desc").Limit(limit).Find(&runs)
	}
	return runs
}
