package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	freq "github.com/imroc/req/v3"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"tvtv2xmltv/global"
	"tvtv2xmltv/service"
)

type cachedLogo struct {
	contentType string
	data        []byte
}

/** fetch a station logo as a browser */
func LogoHandler(c *gin.Context) {
	lineup := service.CurrentLineup()
	if lineup == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	ch, ok := lineup.GetByDigest(c.Param("station"))
	if !ok || ch.Logo == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	logoURL := global.MergeUrl(guideConfig.BaseURL, ch.Logo)
	if item, found := global.LogoCache.Get(logoURL); found {
		logo := item.(cachedLogo)
		c.Data(http.StatusOK, logo.contentType, logo.data)
		return
	}
	client := freq.C().ImpersonateChrome()
	resp, err := client.R().Get(logoURL)
	if err != nil {
		zap.S().Warnf("logo fetch %s: %v", logoURL, err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}
	if resp.StatusCode != http.StatusOK {
		c.AbortWithStatus(resp.StatusCode)
		return
	}
	data, err := resp.ToBytes()
	if err != nil {
		zap.S().Warnf("logo fetch %s: %v", logoURL, err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}
	logo := cachedLogo{
		contentType: resp.GetHeader("Content-Type"),
		data:        data,
	}
	global.LogoCache.Set(logoURL, logo, cache.DefaultExpiration)
	c.Data(http.StatusOK, logo.contentType, logo.data)
}
