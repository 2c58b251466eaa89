package handler

import (
	"bytes"
	"compress/gzip"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"tvtv2xmltv/global"
	"tvtv2xmltv/model"
	"tvtv2xmltv/service"
)

var guideConfig *model.GuideConfig

// UseConfig hands the resolved runtime configuration to the handlers.
func UseConfig(cfg *model.GuideConfig) {
	guideConfig = cfg
}

func GuideHandler(c *gin.Context) {
	data, found := global.GuideCache.Get("guide.xml")
	if !found {
		c.String(http.StatusServiceUnavailable, "guide not generated yet")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data.([]byte))
}

func GuideGzipHandler(c *gin.Context) {
	data, found := global.GuideCache.Get("guide.xml")
	if !found {
		c.String(http.StatusServiceUnavailable, "guide not generated yet")
		return
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data.([]byte)); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := zw.Close(); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/gzip", buf.Bytes())
}

func M3UHandler(c *gin.Context) {
	if content, found := global.GuideCache.Get("lineup.m3u"); found {
		c.Data(http.StatusOK, "application/vnd.apple.mpegurl", []byte(content.(string)))
		return
	}
	lineup := service.CurrentLineup()
	if lineup == nil {
		c.String(http.StatusServiceUnavailable, "lineup not loaded yet")
		return
	}
	content := service.M3UGenerate(guideConfig, lineup)
	global.GuideCache.Set("lineup.m3u", content, cache.DefaultExpiration)
	c.Data(http.StatusOK, "application/vnd.apple.mpegurl", []byte(content))
}

func TXTHandler(c *gin.Context) {
	if content, found := global.GuideCache.Get("lineup.txt"); found {
		c.Data(http.StatusOK, "text/plain; charset=UTF-8", []byte(content.(string)))
		return
	}
	lineup := service.CurrentLineup()
	if lineup == nil {
		c.String(http.StatusServiceUnavailable, "lineup not loaded yet")
		return
	}
	content := service.TXTGenerate(guideConfig, lineup)
	global.GuideCache.Set("lineup.txt", content, cache.DefaultExpiration)
	c.Data(http.StatusOK, "text/plain; charset=UTF-8", []byte(content))
}
