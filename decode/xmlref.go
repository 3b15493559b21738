package decode

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/katalvlaran/olrdecode/geo"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

// xmlDocument is the on-disk reference document shape: one <segment> per
// LinearSegment, each holding an ordered <point> list. This is a bundled
// adapter for the standalone CLI demo, not the production input format —
// real deployments feed Decode its LinearSegment slice directly from
// whatever store holds parsed references.
type xmlDocument struct {
	XMLName  xml.Name     `xml:"segments"`
	Segments []xmlSegment `xml:"segment"`
}

type xmlSegment struct {
	ID         uint32     `xml:"id,attr"`
	LengthM    float64    `xml:"lengthMeters,attr"`
	PosOffsetM float64    `xml:"positiveOffsetMeters,attr"`
	NegOffsetM float64    `xml:"negativeOffsetMeters,attr"`
	Points     []xmlPoint `xml:"point"`
}

type xmlPoint struct {
	Lat     float64 `xml:"lat,attr"`
	Lon     float64 `xml:"lon,attr"`
	Bearing uint8   `xml:"bearing,attr"`
	FRC     int     `xml:"frc,attr"`
	FOW     int     `xml:"fow,attr"`
	LFRCNP  int     `xml:"lfrcnp,attr"`
	DNP     float64 `xml:"dnpMeters,attr"`
}

// ParseXML reads a reference document in the bundled demo format and
// returns its LinearSegments. A malformed document, or a segment with fewer
// than 2 points, yields an error wrapping ErrDecoder.
func ParseXML(r io.Reader) ([]LinearSegment, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parsing xml reference document: %w", ErrDecoder, err)
	}

	segments := make([]LinearSegment, 0, len(doc.Segments))
	for _, xs := range doc.Segments {
		if len(xs.Points) < 2 {
			return nil, fmt.Errorf("decode: segment %d: %w: fewer than 2 points", xs.ID, ErrDecoder)
		}

		points := make([]LocationReferencePoint, len(xs.Points))
		for i, xp := range xs.Points {
			points[i] = LocationReferencePoint{
				LatLon:                    roadgraph.Junction{Point: geo.FromLatLon(geo.LatLon{Lat: xp.Lat, Lon: xp.Lon})},
				Bearing:                   xp.Bearing,
				FunctionalRoadClass:       roadgraph.FunctionalRoadClass(xp.FRC),
				FormOfAWay:                roadgraph.FormOfAWay(xp.FOW),
				DistanceToNextPointMeters: xp.DNP,
				LowestFRCToNextPoint:      roadgraph.FunctionalRoadClass(xp.LFRCNP),
			}
		}

		segments = append(segments, LinearSegment{
			SegmentID: xs.ID,
			LocationReference: LinearLocationReference{
				Points:               points,
				PositiveOffsetMeters: xs.PosOffsetM,
				NegativeOffsetMeters: xs.NegOffsetM,
			},
			SegmentLengthMeters: xs.LengthM,
		})
	}

	return segments, nil
}
