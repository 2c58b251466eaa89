package service

import (
	"fmt"
	"strconv"
	"strings"

	"tvtv2xmltv/global"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
)

// StreamURL expands the tuner stream template for one channel.
// "{channel}" becomes the channel number, "{station}" the station id.
func StreamURL(cfg *model.GuideConfig, ch model.Channel) string {
	url := strings.ReplaceAll(cfg.StreamURL, "{channel}", ch.ChannelNumber)
	return strings.ReplaceAll(url, "{station}", string(ch.StationID))
}

// M3UGenerate renders the lineup as an extended m3u playlist whose
// tvg ids line up with the channel ids in the guide document.
func M3UGenerate(cfg *model.GuideConfig, lineup *syncx.HashedSlice[model.Channel]) string {
	var m3u strings.Builder
	m3u.WriteString("#EXTM3U\n")
	lineup.Each(func(ch model.Channel) bool {
		logo := ""
		if ch.Logo != "" {
			logo = global.MergeUrl(cfg.BaseURL, ch.Logo)
		}
		liveData := fmt.Sprintf("#EXTINF:-1 tvg-id=%s tvg-chno=%s tvg-name=%s tvg-logo=%s group-title=%s, %s\n",
			strconv.Quote(ch.ChannelNumber), strconv.Quote(ch.ChannelNumber), strconv.Quote(ch.CallSign),
			strconv.Quote(logo), strconv.Quote(groupName(ch)), ch.CallSign)
		m3u.WriteString(liveData)
		m3u.WriteString(StreamURL(cfg, ch))
		m3u.WriteString("\n")
		return true
	})
	return m3u.String()
}
