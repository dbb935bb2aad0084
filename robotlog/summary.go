package robotlog

import (
	"fmt"
	"strings"

	"github.com/edaniels/golog"

	"go.viam.com/slamlog/record"
	"go.viam.com/slamlog/utils"
)

// Summary describes time step i: reference position, scan size, pole indices, motor ticks,
// filtered pose and its standard deviations. Only sequences long enough to have an entry at i
// contribute. Headings are printed in degrees; the orientation of the error ellipse is not printed.
func (s *Store) Summary(i int) string {
	if i < 0 {
		return ""
	}
	var sb strings.Builder

	if i < len(s.referencePositions) {
		p := s.referencePositions[i]
		fmt.Fprintf(&sb, " | ref-pos: %4d %4d", p.X, p.Y)
	}

	if i < len(s.scans) {
		fmt.Fprintf(&sb, " | scan-points: %d", len(s.scans[i]))
	}

	if i < len(s.poleIndices) {
		if indices := s.poleIndices[i]; len(indices) > 0 {
			sb.WriteString(" | pole-indices:")
			for _, idx := range indices {
				fmt.Fprintf(&sb, " %d", idx)
			}
		} else {
			sb.WriteString(" | (no pole indices)")
		}
	}

	if i < len(s.motorTicks) {
		m := s.motorTicks[i]
		fmt.Fprintf(&sb, " | motor: %d %d", int64(m.Left), int64(m.Right))
	}

	if i < len(s.filteredPoses) {
		f := s.filteredPoses[i]
		pt := f.Point()
		fmt.Fprintf(&sb, " | filtered-pos: %.1f %.1f", pt.X, pt.Y)
		if pose, ok := f.(record.Pose); ok {
			fmt.Fprintf(&sb, " %.1f", utils.RadToDeg(pose.Heading))
		}
	}

	if i < len(s.uncertainties) {
		u := s.uncertainties[i]
		e := u.ErrorEllipse()
		fmt.Fprintf(&sb, " | stddev: %.1f %.1f", e.Axis1, e.Axis2)
		if h, ok := u.(record.HeadingUncertainty); ok {
			fmt.Fprintf(&sb, " %.1f", utils.RadToDeg(h.HeadingStddev))
		}
	}

	return sb.String()
}

// LogSummaries logs the summary of every time step at info level.
func LogSummaries(logger golog.Logger, s *Store) {
	size := s.Size()
	for i := 0; i < size; i++ {
		logger.Infow("time step", "index", i, "summary", s.Summary(i))
	}
}
