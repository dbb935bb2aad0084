// Package record encodes and decodes the lines of a robot localization log.
//
// A log is plain text, one record per line, read top to bottom. There is no header, footer, count
// or checksum. Each line starts with a tag naming the record type and continues with fields
// separated by whitespace:
//
//	line   = tag SP fields
//	tag    = "P" | "S" | "I" | "M" | "F" | "E" | "L" | "D" | "W" | "PA"
//	fields = token *( SP token )
//
// The tags `L`, `D` and `W` carry a sub-type token (`C` or `E`) right after the tag. Field layouts
// per tag:
//
//	P  timestamp x y                  reference position, integer millimeters
//	S  timestamp [count] distance...  one scan, millimeters; count only in the legacy dialect
//	I  timestamp index...             pole indices in scan order, -1 means undetectable
//	M  left right ...                 motor ticks, anything after the first two fields is ignored
//	F  x y [heading]                  filtered position, heading in radians
//	E  angle std1 std2 [stdHeading]   error ellipse of the filtered position
//	L  C x y diameter                 background landmark (cylinder)
//	D  C x y x y ...                  landmarks detected in one scan
//	W  C x y x y ...                  landmarks in world coordinates for one scan
//	W  E angle axis1 axis2 ...        error ellipses paired with the preceding W C points
//	PA x y heading x y heading ...    particle swarm of one time step
//
// Records line up by position: the i-th record of one tag belongs to the same time step as the
// i-th record of another tag. Tags may be absent or sparse, so sequences can differ in length.
//
// Values are written in fixed six decimal notation (`%f`). A writer line is a caller supplied
// label, typically the tag plus any bookkeeping fields, followed by the values.
//
// Lines whose first token is not a known tag decode to KindNone and are meant to be skipped so that
// older readers keep working on logs that contain newer record types.
package record
