package service

import (
	"time"

	"tvtv2xmltv/syncx"
)

// StatusInfo is the last observed state of one pipeline stage.
type StatusInfo struct {
	Time   time.Time
	Status int
	Msg    string
}

const (
	Unknown = iota
	Ok
	Warning
	Error
)

var statusCache syncx.Map[string, *StatusInfo]

func UpdateStatus(stage string, status int, msg string) {
	statusCache.Store(stage, &StatusInfo{
		Time:   time.Now(),
		Status: status,
		Msg:    msg,
	})
}

func AllStatus() map[string]*StatusInfo {
	all := make(map[string]*StatusInfo)
	statusCache.Range(func(stage string, info *StatusInfo) bool {
		all[stage] = info
		return true
	})
	return all
}

// ResetStatus drops stage entries from earlier runs so a shortened
// schedule does not keep reporting stale days.
func ResetStatus() {
	statusCache.Clear()
}
