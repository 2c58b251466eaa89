package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tvtv2xmltv/model"
	"tvtv2xmltv/service"
)

func ChannelListHandler(c *gin.Context) {
	channels := make([]Channel, 0)
	if lineup := service.CurrentLineup(); lineup != nil {
		lineup.Each(func(ch model.Channel) bool {
			logo := ""
			if ch.Logo != "" {
				logo = "/logo/" + string(ch.StationID)
			}
			channels = append(channels, Channel{
				Number:   ch.ChannelNumber,
				Station:  string(ch.StationID),
				CallSign: ch.CallSign,
				Logo:     logo,
				Stream:   service.StreamURL(guideConfig, ch),
			})
			return true
		})
	}
	c.JSON(http.StatusOK, channels)
}

func StatusHandler(c *gin.Context) {
	stages := make(map[string]Stage)
	for name, info := range service.AllStatus() {
		stages[name] = Stage{
			Status:     info.Status,
			Message:    info.Msg,
			LastUpdate: info.Time.Format("2006-01-02 15:04:05"),
		}
	}
	c.JSON(http.StatusOK, Status{
		Refreshing: service.Refreshing(),
		Stages:     stages,
		History:    service.RunHistory(20),
	})
}

func RefreshHandler(c *gin.Context) {
	if service.Refreshing() {
		c.JSON(http.StatusConflict, gin.H{"refreshing": true})
		return
	}
	go service.RefreshGuide(guideConfig)
	c.JSON(http.StatusAccepted, gin.H{"refreshing": true})
}
