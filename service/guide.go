package service

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"
	"tvtv2xmltv/global"
	"tvtv2xmltv/model"
	"tvtv2xmltv/syncx"
	"tvtv2xmltv/xmltv"
)

// Guide is the outcome of one generation pass. On a lineup failure
// Doc still holds a parseable empty document.
type Guide struct {
	Doc    *xmltv.TV
	Data   []byte
	Lineup *syncx.HashedSlice[model.Channel]
	Run    model.GuideRun
}

// BuildGuide runs the pipeline in memory: lineup, grid, markup. The
// clock is read once so every day window derives from the same date.
func BuildGuide(cfg *model.GuideConfig) (*Guide, error) {
	now := time.Now()
	guide := &Guide{
		Doc: xmltv.NewTV(now, cfg.BaseURL),
		Run: model.GuideRun{StartedAt: now},
	}
	f := NewFetcher(cfg)

	lineup, err := FetchLineup(f, cfg)
	if err != nil {
		UpdateStatus("lineup", Error, err.Error())
		guide.Run.FinishedAt = time.Now()
		guide.Run.Message = err.Error()
		return guide, err
	}
	guide.Lineup = lineup
	UpdateStatus("lineup", Ok, fmt.Sprintf("%d channels", lineup.Len()))

	stations := make([]string, 0, lineup.Len())
	lineup.Each(func(ch model.Channel) bool {
		guide.Doc.Channels = append(guide.Doc.Channels, channelElement(cfg, ch))
		stations = append(stations, string(ch.StationID))
		return true
	})

	for day := 0; day < cfg.Days; day++ {
		zap.S().Infof("fetching guide data for day %d/%d", day+1, cfg.Days)
		grid := FetchGridDay(f, cfg, now, day, stations)
		guide.Run.FailedBatches += grid.FailedBatches
		guide.Run.PairMismatches += grid.Mismatches
		stage := fmt.Sprintf("day %d", day+1)
		if grid.FailedBatches > 0 {
			UpdateStatus(stage, Warning, fmt.Sprintf("%d batches failed", grid.FailedBatches))
		} else {
			UpdateStatus(stage, Ok, fmt.Sprintf("%d slices", len(grid.Slices)))
		}
		for idx := 0; idx < lineup.Len(); idx++ {
			if idx >= len(grid.Slices) {
				break
			}
			ch, _ := lineup.GetByIndex(idx)
			for _, raw := range grid.Slices[idx] {
				var prog model.Program
				if err := json.Unmarshal(raw, &prog); err != nil {
					zap.S().Warnf("error processing program data: %v. program: %s", err, string(raw))
					guide.Run.SkippedPrograms++
					continue
				}
				p, err := programmeElement(cfg, ch, prog)
				if err != nil {
					zap.S().Warnf("error processing program data: %v. program: %s", err, string(raw))
					guide.Run.SkippedPrograms++
					continue
				}
				guide.Doc.Programmes = append(guide.Doc.Programmes, p)
			}
		}
	}

	guide.Run.Channels = lineup.Len()
	guide.Run.Programmes = len(guide.Doc.Programmes)
	guide.Run.Success = true
	guide.Run.FinishedAt = time.Now()
	return guide, nil
}

func channelElement(cfg *model.GuideConfig, ch model.Channel) xmltv.Channel {
	el := xmltv.Channel{
		ID:           ch.ChannelNumber,
		DisplayNames: []string{ch.ChannelNumber, ch.CallSign},
	}
	if ch.Logo != "" {
		el.Icon = &xmltv.Icon{Src: global.MergeUrl(cfg.BaseURL, ch.Logo)}
	}
	return el
}

func programmeElement(cfg *model.GuideConfig, ch model.Channel, prog model.Program) (xmltv.Programme, error) {
	start, err := time.Parse(time.RFC3339, prog.StartTime)
	if err != nil {
		return xmltv.Programme{}, err
	}
	startLocal := start.In(cfg.Location)
	stopLocal := startLocal.Add(time.Duration(prog.RunTime) * time.Minute)

	p := xmltv.Programme{
		Start:   startLocal.Format(xmltv.TimeLayout),
		Stop:    stopLocal.Format(xmltv.TimeLayout),
		Channel: ch.ChannelNumber,
		Title:   xmltv.Text{Lang: cfg.Language, Value: prog.Title},
	}
	if prog.Subtitle != "" {
		p.SubTitle = &xmltv.Text{Lang: cfg.Language, Value: prog.Subtitle}
	}
	switch prog.Type {
	case "M":
		p.Category = append(p.Category, xmltv.Text{Lang: cfg.Language, Value: "movie"})
	case "N":
		p.Category = append(p.Category, xmltv.Text{Lang: cfg.Language, Value: "news"})
	case "S":
		p.Category = append(p.Category, xmltv.Text{Lang: cfg.Language, Value: "sports"})
	}
	if slices.Contains(prog.Flags, "EI") {
		p.Category = append(p.Category, xmltv.Text{Lang: cfg.Language, Value: "kids"})
	}
	if slices.Contains(prog.Flags, "HD") {
		p.Video = &xmltv.Video{Quality: "HDTV"}
	}
	if slices.Contains(prog.Flags, "Stereo") {
		p.Audio = &xmltv.Audio{Stereo: "stereo"}
	}
	if slices.Contains(prog.Flags, "New") {
		p.New = &xmltv.Marker{}
	}
	return p, nil
}

// WriteGuide generates the guide and overwrites the output file. A
// failed lineup still writes the empty document so consumers keep a
// parseable file, the original error wins over a partial write error.
func WriteGuide(cfg *model.GuideConfig) (*Guide, error) {
	guide, genErr := BuildGuide(cfg)
	data, err := guide.Doc.Encode()
	if err != nil {
		return guide, err
	}
	guide.Data = data
	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		UpdateStatus("output", Error, err.Error())
		if genErr != nil {
			zap.S().Errorf("error writing partial file: %v", err)
			return guide, genErr
		}
		return guide, fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	UpdateStatus("output", Ok, cfg.Output)
	if genErr != nil {
		return guide, genErr
	}
	zap.S().Infof("successfully wrote guide to %s", cfg.Output)
	return guide, nil
}
