// xmltv document model
package xmltv

import (
	"encoding/xml"
	"time"
)

const GeneratorName = "tvtv2xmltv"

// TimeLayout is the timestamp format of programme boundaries,
// local time plus a numeric zone offset.
const TimeLayout = "20060102150405 -0700"

type TV struct {
	XMLName        xml.Name    `xml:"tv"`
	Date           string      `xml:"date,attr"`
	SourceInfoURL  string      `xml:"source-info-url,attr"`
	SourceInfoName string      `xml:"source-info-name,attr"`
	Channels       []Channel   `xml:"channel"`
	Programmes     []Programme `xml:"programme"`
}

type Channel struct {
	ID           string   `xml:"id,attr"`
	DisplayNames []string `xml:"display-name"`
	Icon         *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

type Programme struct {
	Start    string  `xml:"start,attr"`
	Stop     string  `xml:"stop,attr"`
	Channel  string  `xml:"channel,attr"`
	Title    Text    `xml:"title"`
	SubTitle *Text   `xml:"sub-title,omitempty"`
	Category []Text  `xml:"category,omitempty"`
	Video    *Video  `xml:"video,omitempty"`
	Audio    *Audio  `xml:"audio,omitempty"`
	New      *Marker `xml:"new,omitempty"`
}

type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Video struct {
	Quality string `xml:"quality"`
}

type Audio struct {
	Stereo string `xml:"stereo"`
}

// Marker renders as an empty flag element.
type Marker struct{}

// NewTV returns an empty document dated at the UTC midnight of the
// generation time.
func NewTV(generated time.Time, sourceURL string) *TV {
	return &TV{
		Date:           generated.UTC().Format("2006-01-02") + "T00:00:00.000Z",
		SourceInfoURL:  sourceURL,
		SourceInfoName: GeneratorName,
	}
}

// Encode marshals the document with the XML declaration prepended.
func (tv *TV) Encode() ([]byte, error) {
	data, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
