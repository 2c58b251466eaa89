package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StationID accepts both the numeric and the quoted form the listing
// service has been observed to return for station identifiers.
type StationID string

func (s *StationID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StationID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = StationID(num.String())
		return nil
	}
	return fmt.Errorf("stationId: cannot decode %s", string(data))
}

// Channel is one lineup entry as returned by the listing service.
type Channel struct {
	ChannelNumber string    `json:"channelNumber"`
	StationID     StationID `json:"stationId"`
	CallSign      string    `json:"stationCallSign"`
	Logo          string    `json:"logo"`
}

func (c Channel) Digest() string {
	return string(c.StationID)
}

// Major returns the channel number without the subchannel suffix,
// so "7.1" and "7.2" both group under "7".
func (c Channel) Major() string {
	if i := strings.IndexByte(c.ChannelNumber, '.'); i > 0 {
		return c.ChannelNumber[:i]
	}
	return c.ChannelNumber
}
