package route

import (
	"github.com/gin-gonic/gin"
	"tvtv2xmltv/handler"
)

func Register(r *gin.Engine) {
	r.GET("/guide.xml", handler.GuideHandler)
	r.GET("/guide.xml.gz", handler.GuideGzipHandler)
	r.GET("/lineup.m3u", handler.M3UHandler)
	r.GET("/lineup.txt", handler.TXTHandler)
	r.GET("/logo/:station", handler.LogoHandler)

	r.GET("/api/channels", handler.ChannelListHandler)
	r.GET("/api/status", handler.StatusHandler)
	r.POST("/api/refresh", handler.RefreshHandler)
}
