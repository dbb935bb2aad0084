package robotlog

import (
	"io"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/slamlog/record"
)

const sourceA = `P 0 100 200
M 1000 2000 0 0
P 10 110 210
M 1010 2020 0 0
`

const sourceB = `M 5 6
F 100.0 200.0 0.5
M 7 8
F 101.0 201.0
`

func newTestReader(t *testing.T, cfg Config) *Reader {
	t.Helper()
	r, err := NewReader(cfg, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return r
}

func TestReadMergesPerKind(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()

	test.That(t, r.Read(s, strings.NewReader(sourceA)), test.ShouldBeNil)
	test.That(t, s.ReferencePositions(), test.ShouldHaveLength, 2)
	test.That(t, s.MotorTicks(), test.ShouldResemble, []record.MotorTicks{
		{Left: 1000, Right: 2000},
		{Left: 1010, Right: 2020},
	})

	test.That(t, r.Read(s, strings.NewReader(sourceB)), test.ShouldBeNil)
	test.That(t, s.ReferencePositions(), test.ShouldResemble, []record.ReferencePosition{
		{X: 100, Y: 200},
		{X: 110, Y: 210},
	})
	test.That(t, s.MotorTicks(), test.ShouldResemble, []record.MotorTicks{
		{Left: 5, Right: 6},
		{Left: 7, Right: 8},
	})
	test.That(t, s.FilteredPoses(), test.ShouldResemble, []record.FilteredPose{
		record.Pose{X: 100, Y: 200, Heading: 0.5},
		record.Position{X: 101, Y: 201},
	})

	last, ok := s.LastTicks()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, last, test.ShouldResemble, record.MotorTicks{Left: 7, Right: 8})
}

func TestReadLastTicksAcrossPasses(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.Read(s, strings.NewReader("M 1 2\nM 3 4\n")), test.ShouldBeNil)
	test.That(t, r.Read(s, strings.NewReader("P 0 1 1\n")), test.ShouldBeNil)
	last, ok := s.LastTicks()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, last, test.ShouldResemble, record.MotorTicks{Left: 3, Right: 4})

	test.That(t, r.Read(s, strings.NewReader("M 9 10\n")), test.ShouldBeNil)
	last, _ = s.LastTicks()
	test.That(t, last, test.ShouldResemble, record.MotorTicks{Left: 9, Right: 10})
	test.That(t, s.MotorTicks(), test.ShouldHaveLength, 1)
}

func TestReadEveryTag(t *testing.T) {
	const src = `P 0 1534 -20
S 0 3 112.0 113.0 114.0
I 0 4 -1
M 10 20
F 1.0 2.0 0.1
E 0.5 10.0 5.0 0.01
L C 1000 500 90
L C 2000 500 90
D C 1 2 3 4
W C 5 6
W E 0.1 2.0 1.0
PA 1 2 0 3 4 0
`
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.Read(s, strings.NewReader(src)), test.ShouldBeNil)

	test.That(t, s.Scans(), test.ShouldResemble, []record.Scan{{112, 113, 114}})
	test.That(t, s.PoleIndices(), test.ShouldResemble, []record.PoleIndices{{4, -1}})
	test.That(t, s.Landmarks(), test.ShouldResemble, []record.Landmark{
		{Type: "C", Fields: []string{"1000.0", "500.0", "90.0"}},
		{Type: "C", Fields: []string{"2000.0", "500.0", "90.0"}},
	})
	test.That(t, s.Detections(), test.ShouldResemble, []record.Detections{{{X: 1, Y: 2}, {X: 3, Y: 4}}})
	test.That(t, s.WorldLandmarks(), test.ShouldResemble, []record.WorldLandmarks{{r2.Point{X: 5, Y: 6}}})
	test.That(t, s.WorldEllipses(), test.ShouldHaveLength, 1)
	test.That(t, s.Particles(), test.ShouldResemble, []record.Swarm{{{X: 1, Y: 2}, {X: 3, Y: 4}}})
	test.That(t, s.PoseUncertainties(), test.ShouldHaveLength, 1)
	test.That(t, s.Size(), test.ShouldEqual, 1)
}

func TestReadSkipsUnknownTags(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	r, err := NewReader(Config{}, logger)
	test.That(t, err, test.ShouldBeNil)
	s := NewStore()
	src := "X 1 2 3\n\nP 0 1 2\nZZ\nX 4\nD Q 1 2\nW Q 1\nD Q 3 4\n"
	test.That(t, r.Read(s, strings.NewReader(src)), test.ShouldBeNil)
	test.That(t, s.ReferencePositions(), test.ShouldHaveLength, 1)
	test.That(t, s.Detections(), test.ShouldBeEmpty)
	test.That(t, s.Size(), test.ShouldEqual, 1)

	tags := logs.FilterMessage("skipping unrecognized record tag").All()
	test.That(t, tags, test.ShouldHaveLength, 2)
	test.That(t, tags[0].ContextMap()["tag"], test.ShouldEqual, "X")
	test.That(t, tags[1].ContextMap()["tag"], test.ShouldEqual, "ZZ")

	subtypes := logs.FilterMessage("skipping unrecognized record sub-type").All()
	test.That(t, subtypes, test.ShouldHaveLength, 2)
	test.That(t, subtypes[0].ContextMap()["tag"], test.ShouldEqual, "D")
	test.That(t, subtypes[0].ContextMap()["subtype"], test.ShouldEqual, "Q")
	test.That(t, subtypes[1].ContextMap()["tag"], test.ShouldEqual, "W")
}

func TestReadUnknownLandmarkTypeStillReplaces(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.Read(s, strings.NewReader("L C 1 2 3\n")), test.ShouldBeNil)
	test.That(t, s.Landmarks(), test.ShouldHaveLength, 1)
	test.That(t, r.Read(s, strings.NewReader("L Q 1 2 3\n")), test.ShouldBeNil)
	test.That(t, s.Landmarks(), test.ShouldBeEmpty)
}

func TestReadWithoutTrailingNewline(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.Read(s, strings.NewReader("P 0 1 2\nP 1 3 4")), test.ShouldBeNil)
	test.That(t, s.ReferencePositions(), test.ShouldHaveLength, 2)
}

func TestReadParseErrorLeavesStoreUntouched(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.Read(s, strings.NewReader(sourceA)), test.ShouldBeNil)

	err := r.Read(s, strings.NewReader("M 1 2\nP 0 1 2\nD C 1 2 3\n"))
	test.That(t, err, test.ShouldNotBeNil)
	var parseErr *record.ParseError
	test.That(t, errors.As(err, &parseErr), test.ShouldBeTrue)
	test.That(t, parseErr.Tag, test.ShouldEqual, "D")
	test.That(t, parseErr.Line, test.ShouldEqual, 3)
	test.That(t, parseErr.Raw, test.ShouldEqual, "D C 1 2 3")
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 3")

	test.That(t, s.MotorTicks(), test.ShouldHaveLength, 2)
	test.That(t, s.ReferencePositions(), test.ShouldResemble, []record.ReferencePosition{
		{X: 100, Y: 200},
		{X: 110, Y: 210},
	})
	last, _ := s.LastTicks()
	test.That(t, last, test.ShouldResemble, record.MotorTicks{Left: 1010, Right: 2020})
}

func TestReadScanDialects(t *testing.T) {
	plain := "S 0 10.0 20.0\n"
	counted := "S 0 2 10.0 20.0\n"

	auto := newTestReader(t, Config{})
	s1, s2 := NewStore(), NewStore()
	test.That(t, auto.Read(s1, strings.NewReader(plain)), test.ShouldBeNil)
	test.That(t, auto.Read(s2, strings.NewReader(counted)), test.ShouldBeNil)
	test.That(t, s1.Scans(), test.ShouldResemble, s2.Scans())

	strict := newTestReader(t, Config{ScanFormat: "counted"})
	s3 := NewStore()
	test.That(t, strict.Read(s3, strings.NewReader(counted)), test.ShouldBeNil)
	test.That(t, s3.Scans(), test.ShouldResemble, s1.Scans())
	test.That(t, strict.Read(s3, strings.NewReader(plain)), test.ShouldNotBeNil)
}

func TestReadMaxLineBytes(t *testing.T) {
	r := newTestReader(t, Config{MaxLineBytes: 16})
	s := NewStore()
	err := r.Read(s, strings.NewReader("P 0 1 2\nS 0 1.0 2.0 3.0 4.0 5.0\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")
	test.That(t, s.Size(), test.ShouldEqual, 0)

	test.That(t, r.Read(s, strings.NewReader("P 0 1 2\nS 0 1.0 2.0\n")), test.ShouldBeNil)
	test.That(t, s.Scans(), test.ShouldHaveLength, 1)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestReadMaxLineBytesStopsEarly(t *testing.T) {
	r := newTestReader(t, Config{MaxLineBytes: 64})
	long := "S 0" + strings.Repeat(" 1.0", 1<<18) + "\n"
	src := &countingReader{r: strings.NewReader(long)}
	err := r.Read(NewStore(), src)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 1 is longer than the 64 byte limit")
	test.That(t, src.n, test.ShouldBeLessThan, len(long)/100)
}

func TestReadAll(t *testing.T) {
	r := newTestReader(t, Config{})
	s := NewStore()
	test.That(t, r.ReadAll(s, strings.NewReader(sourceA), strings.NewReader(sourceB)), test.ShouldBeNil)
	test.That(t, s.ReferencePositions(), test.ShouldHaveLength, 2)
	test.That(t, s.MotorTicks(), test.ShouldResemble, []record.MotorTicks{{Left: 5, Right: 6}, {Left: 7, Right: 8}})

	err := r.ReadAll(s, strings.NewReader("P 0 1 2\n"), strings.NewReader("F 1\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "source 1")
	var parseErr *record.ParseError
	test.That(t, errors.As(err, &parseErr), test.ShouldBeTrue)
	test.That(t, parseErr.Line, test.ShouldEqual, 1)
	test.That(t, s.ReferencePositions(), test.ShouldResemble, []record.ReferencePosition{{X: 1, Y: 2}})
}

func TestNewReaderRejectsBadConfig(t *testing.T) {
	_, err := NewReader(Config{ScanFormat: "binary"}, nil)
	test.That(t, err, test.ShouldNotBeNil)

	r, err := NewReader(Config{}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Read(NewStore(), strings.NewReader("Q 1\n")), test.ShouldBeNil)
}
