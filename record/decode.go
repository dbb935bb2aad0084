package record

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/slamlog/ellipse"
)

// ScanFormat selects how the fields after the timestamp of an `S` line are read.
type ScanFormat int

const (
	// ScanFormatAuto drops a leading count field when it matches the number of distances.
	ScanFormatAuto ScanFormat = iota
	// ScanFormatPlain reads every field after the timestamp as a distance.
	ScanFormatPlain
	// ScanFormatCounted expects the legacy count field before the distances.
	ScanFormatCounted
)

// ParseScanFormat parses the configuration name of a scan format. The empty string is auto.
func ParseScanFormat(name string) (ScanFormat, error) {
	switch name {
	case "", "auto":
		return ScanFormatAuto, nil
	case "plain":
		return ScanFormatPlain, nil
	case "counted":
		return ScanFormatCounted, nil
	default:
		return ScanFormatAuto, errors.Errorf("unknown scan format %q", name)
	}
}

// A Decoder turns log lines into values. The zero value decodes both scan dialects.
type Decoder struct {
	ScanFormat ScanFormat
}

// DecodeLine splits a line on whitespace and decodes it. Blank lines and lines with an unknown tag
// return KindNone and no error. A recognized line may also return a nil value with a valid kind,
// which marks the kind as present without adding anything to it.
func (d Decoder) DecodeLine(line string) (Kind, Value, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return KindNone, nil, nil
	}
	kind, v, err := d.decode(tokens[0], tokens[1:])
	if err != nil {
		return kind, nil, &ParseError{Tag: tokens[0], Raw: strings.TrimSpace(line), Err: err}
	}
	return kind, v, nil
}

func (d Decoder) decode(tag string, fields []string) (Kind, Value, error) {
	switch tag {
	case TagReferencePosition:
		v, err := decodeReferencePosition(fields)
		return KindReferencePosition, v, err
	case TagScan:
		v, err := decodeScan(fields, d.ScanFormat)
		return KindScan, v, err
	case TagPoleIndices:
		v, err := decodePoleIndices(fields)
		return KindPoleIndices, v, err
	case TagMotorTicks:
		v, err := decodeMotorTicks(fields)
		return KindMotorTicks, v, err
	case TagFilteredPose:
		v, err := decodeFilteredPose(fields)
		return KindFilteredPose, v, err
	case TagPoseUncertainty:
		v, err := decodePoseUncertainty(fields)
		return KindPoseUncertainty, v, err
	case TagLandmark:
		return decodeLandmark(fields)
	case TagDetection:
		return decodeDetections(fields)
	case TagWorld:
		return decodeWorld(fields)
	case TagParticles:
		v, err := decodeSwarm(fields)
		return KindParticles, v, err
	default:
		return KindNone, nil, nil
	}
}

func decodeReferencePosition(fields []string) (Value, error) {
	if len(fields) != 3 {
		return nil, errors.Errorf("expected timestamp, x and y, got %d fields", len(fields))
	}
	if _, err := parseFloats(fields[:1]); err != nil {
		return nil, err
	}
	xy, err := parseInts(fields[1:])
	if err != nil {
		return nil, err
	}
	return ReferencePosition{X: xy[0], Y: xy[1]}, nil
}

func decodeScan(fields []string, format ScanFormat) (Value, error) {
	if len(fields) == 0 {
		return nil, errors.New("missing timestamp")
	}
	if _, err := parseFloats(fields[:1]); err != nil {
		return nil, err
	}
	distances := fields[1:]
	switch format {
	case ScanFormatCounted:
		if len(distances) == 0 {
			return nil, errors.New("missing scan count")
		}
		count, err := strconv.Atoi(distances[0])
		if err != nil {
			return nil, errors.Wrap(err, "scan count")
		}
		if count != len(distances)-1 {
			return nil, errors.Errorf("scan count %d does not match %d distances", count, len(distances)-1)
		}
		distances = distances[1:]
	case ScanFormatAuto:
		if hasScanCount(distances) {
			distances = distances[1:]
		}
	case ScanFormatPlain:
	}
	values, err := parseFloats(distances)
	if err != nil {
		return nil, err
	}
	return Scan(values), nil
}

// hasScanCount reports whether the first field is an integer that counts the fields after it.
func hasScanCount(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	count, err := strconv.Atoi(fields[0])
	return err == nil && count == len(fields)-1
}

func decodePoleIndices(fields []string) (Value, error) {
	if len(fields) == 0 {
		return nil, errors.New("missing timestamp")
	}
	if _, err := parseFloats(fields[:1]); err != nil {
		return nil, err
	}
	indices, err := parseInts(fields[1:])
	if err != nil {
		return nil, err
	}
	return PoleIndices(indices), nil
}

func decodeMotorTicks(fields []string) (Value, error) {
	if len(fields) < 2 {
		return nil, errors.Errorf("expected at least 2 fields, got %d", len(fields))
	}
	ticks, err := parseFloats(fields[:2])
	if err != nil {
		return nil, err
	}
	return MotorTicks{Left: ticks[0], Right: ticks[1]}, nil
}

func decodeFilteredPose(fields []string) (Value, error) {
	values, err := parseFloats(fields)
	if err != nil {
		return nil, err
	}
	switch len(values) {
	case 2:
		return Position{X: values[0], Y: values[1]}, nil
	case 3:
		return Pose{X: values[0], Y: values[1], Heading: values[2]}, nil
	default:
		return nil, errors.Errorf("expected 2 or 3 fields, got %d", len(values))
	}
}

func decodePoseUncertainty(fields []string) (Value, error) {
	values, err := parseFloats(fields)
	if err != nil {
		return nil, err
	}
	if len(values) != 3 && len(values) != 4 {
		return nil, errors.Errorf("expected 3 or 4 fields, got %d", len(values))
	}
	e := ellipse.Ellipse{Angle: values[0], Axis1: values[1], Axis2: values[2]}
	if len(values) == 4 {
		return HeadingUncertainty{Ellipse: e, HeadingStddev: values[3]}, nil
	}
	return PositionUncertainty{Ellipse: e}, nil
}

// decodeLandmark returns a nil value for sub-types other than cylinders. The line still counts as
// a landmark line.
func decodeLandmark(fields []string) (Kind, Value, error) {
	if len(fields) == 0 {
		return KindLandmark, nil, errors.New("missing landmark type")
	}
	if fields[0] != SubtypeCylinder {
		return KindLandmark, nil, nil
	}
	values, err := parseFloats(fields[1:])
	if err != nil {
		return KindLandmark, nil, err
	}
	l := Landmark{Type: SubtypeCylinder, Fields: make([]string, 0, len(values))}
	for _, v := range values {
		l.Fields = append(l.Fields, FormatDecimal(v))
	}
	return KindLandmark, l, nil
}

func decodeDetections(fields []string) (Kind, Value, error) {
	if len(fields) == 0 {
		return KindDetections, nil, errors.New("missing detection type")
	}
	if fields[0] != SubtypeCylinder {
		return KindNone, nil, nil
	}
	points, err := parsePoints(fields[1:])
	if err != nil {
		return KindDetections, nil, err
	}
	return KindDetections, Detections(points), nil
}

func decodeWorld(fields []string) (Kind, Value, error) {
	if len(fields) == 0 {
		return KindWorldLandmarks, nil, errors.New("missing world record type")
	}
	switch fields[0] {
	case SubtypeCylinder:
		points, err := parsePoints(fields[1:])
		if err != nil {
			return KindWorldLandmarks, nil, err
		}
		return KindWorldLandmarks, WorldLandmarks(points), nil
	case SubtypeEllipse:
		values, err := parseTriples(fields[1:])
		if err != nil {
			return KindWorldEllipses, nil, err
		}
		ellipses := make(WorldEllipses, 0, len(values))
		for _, t := range values {
			ellipses = append(ellipses, ellipse.Ellipse{Angle: t[0], Axis1: t[1], Axis2: t[2]})
		}
		return KindWorldEllipses, ellipses, nil
	default:
		return KindNone, nil, nil
	}
}

func decodeSwarm(fields []string) (Value, error) {
	values, err := parseTriples(fields)
	if err != nil {
		return nil, err
	}
	swarm := make(Swarm, 0, len(values))
	for _, t := range values {
		swarm = append(swarm, Pose{X: t[0], Y: t[1], Heading: t[2]})
	}
	return swarm, nil
}

func parseFloats(tokens []string) ([]float64, error) {
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		values[i] = v
	}
	return values, nil
}

func parseInts(tokens []string) ([]int, error) {
	values := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		values[i] = v
	}
	return values, nil
}

// parsePoints groups a flat x y x y ... list into points.
func parsePoints(tokens []string) ([]r2.Point, error) {
	if len(tokens)%2 != 0 {
		return nil, errors.Errorf("expected x y pairs, got %d fields", len(tokens))
	}
	values, err := parseFloats(tokens)
	if err != nil {
		return nil, err
	}
	points := make([]r2.Point, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		points = append(points, r2.Point{X: values[i], Y: values[i+1]})
	}
	return points, nil
}

// parseTriples groups a flat list into consecutive triples.
func parseTriples(tokens []string) ([][3]float64, error) {
	if len(tokens)%3 != 0 {
		return nil, errors.Errorf("expected groups of 3 fields, got %d fields", len(tokens))
	}
	values, err := parseFloats(tokens)
	if err != nil {
		return nil, err
	}
	triples := make([][3]float64, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		triples = append(triples, [3]float64{values[i], values[i+1], values[i+2]})
	}
	return triples, nil
}
