package decode

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/olrdecode/roadgraph"
)

// PathResult pairs a segment id with its decoded edge path (possibly
// empty, meaning decode failed for that segment).
type PathResult struct {
	SegmentID uint32
	Path      []roadgraph.Edge
}

// WriteSink writes results to w: one line per non-empty path, tab-
// separated segmentId and edge list, edges joined by '=', each edge
// rendered "country-featureIndex-segmentIndex". results must already be
// sorted ascending by SegmentID — WriteSink does not sort.
func WriteSink(w io.Writer, results []PathResult) error {
	bw := bufio.NewWriter(w)

	for _, r := range results {
		if len(r.Path) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(bw, "%d\t", r.SegmentID); err != nil {
			return err
		}

		for i, e := range r.Path {
			if i > 0 {
				if _, err := bw.WriteString("="); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%s-%d-%d", e.Feature.Country, e.Feature.Index, e.SegmentIndex); err != nil {
				return err
			}
		}

		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
