package handler

import "tvtv2xmltv/model"

type Channel struct {
	Number   string `json:"number"`
	Station  string `json:"station"`
	CallSign string `json:"callSign"`
	Logo     string `json:"logo"`
	Stream   string `json:"stream"`
}

type Stage struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	LastUpdate string `json:"lastUpdate"`
}

type Status struct {
	Refreshing bool             `json:"refreshing"`
	Stages     map[string]Stage `json:"stages"`
	History    []model.GuideRun `json:"history"`
}
