package service

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
)

type genre struct {
	name     string
	channels *orderedmap.OrderedMap[string, []string]
}

func newGenre(name string) *genre {
	return &genre{
		name:     name,
		channels: orderedmap.New[string, []string](),
	}
}

func (g *genre) addChannel(chName string, url string) {
	chName = strings.Replace(chName, ",", "_", -1)
	if group, ok := g.channels.Get(chName); ok {
		g.channels.Set(chName, append(group, url))
	} else {
		g.channels.Set(chName, []string{url})
	}
}

func (g *genre) String() string {
	channels := []string{g.name + ",#genre#"}
	for pair := g.channels.Oldest(); pair != nil; pair = pair.Next() {
		for _, url := range pair.Value {
			channels = append(channels, pair.Key+","+url)
		}
	}
	return strings.Join(channels, "\n")
}

// groupName buckets subchannels under their major channel number, so
// 7.1 and 7.2 list together.
func groupName(ch model.Channel) string {
	return "Channel " + ch.Major()
}

// TXTGenerate renders the lineup in the plain text playlist format,
// one genre block per major channel number in lineup order.
func TXTGenerate(cfg *model.GuideConfig, lineup *syncx.HashedSlice[model.Channel]) string {
	genres := orderedmap.New[string, *genre]()
	lineup.Each(func(ch model.Channel) bool {
		name := groupName(ch)
		g, ok := genres.Get(name)
		if !ok {
			g = newGenre(name)
			genres.Set(name, g)
		}
		g.addChannel(ch.CallSign, StreamURL(cfg, ch))
		return true
	})
	var txt strings.Builder
	for pair := genres.Oldest(); pair != nil; pair = pair.Next() {
		txt.WriteString(pair.Value.String())
		txt.WriteString("\n\n")
	}
	return txt.String()
}
