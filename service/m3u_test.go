package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
)

func playlistLineup(t *testing.T) *syncx.HashedSlice[model.Channel] {
	t.Helper()
	lineup := syncx.NewHashedSlice[model.Channel]()
	for _, ch := range []model.Channel{
		{ChannelNumber: "13.1", StationID: "300", CallSign: "WNET", Logo: "/logos/wnet.png"},
		{ChannelNumber: "7.1", StationID: "100", CallSign: "WABC"},
		{ChannelNumber: "7.2", StationID: "101", CallSign: "Shop, Shop"},
	} {
		lineup.Add(ch)
	}
	return lineup
}

func playlistConfig() *model.GuideConfig {
	return &model.GuideConfig{
		BaseURL:   "https://www.tvtv.us",
		StreamURL: "http://127.0.0.1:5004/auto/v{channel}",
	}
}

func TestStreamURL(t *testing.T) {
	cfg := &model.GuideConfig{StreamURL: "http://tuner/stream/{station}?display={channel}"}
	ch := model.Channel{ChannelNumber: "7.1", StationID: "100"}
	require.Equal(t, "http://tuner/stream/100?display=7.1", StreamURL(cfg, ch))
}

func TestM3UGenerate(t *testing.T) {
	want := "#EXTM3U\n" +
		"#EXTINF:-1 tvg-id=\"13.1\" tvg-chno=\"13.1\" tvg-name=\"WNET\" tvg-logo=\"https://www.tvtv.us/logos/wnet.png\" group-title=\"Channel 13\", WNET\n" +
		"http://127.0.0.1:5004/auto/v13.1\n" +
		"#EXTINF:-1 tvg-id=\"7.1\" tvg-chno=\"7.1\" tvg-name=\"WABC\" tvg-logo=\"\" group-title=\"Channel 7\", WABC\n" +
		"http://127.0.0.1:5004/auto/v7.1\n" +
		"#EXTINF:-1 tvg-id=\"7.2\" tvg-chno=\"7.2\" tvg-name=\"Shop, Shop\" tvg-logo=\"\" group-title=\"Channel 7\", Shop, Shop\n" +
		"http://127.0.0.1:5004/auto/v7.2\n"
	require.Equal(t, want, M3UGenerate(playlistConfig(), playlistLineup(t)))
}
