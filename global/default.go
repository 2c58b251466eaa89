package global

import (
	"time"

	"github.com/patrickmn/go-cache"
	"tvtv2xmltv/syncx"
)

var defaultConfigValue = map[string]string{
	"base_url":      "https://www.tvtv.us",
	"lineup":        "USA-OTA23456",
	"days":          "8",
	"timezone":      "America/New_York",
	"language":      "en",
	"output":        "",
	"stream_url":    "http://127.0.0.1:5004/auto/v{channel}",
	"exclude":       "",
	"proxy_url":     "",
	"refresh_every": "6h",
}

var (
	HttpClientTimeout = 10 * time.Second
	ConfigCache       syncx.Map[string, string]
	GuideCache        = cache.New(cache.NoExpiration, 10*time.Minute)
	LogoCache         = cache.New(6*time.Hour, time.Hour)
)
