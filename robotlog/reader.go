package robotlog

import (
	"bufio"
	"io"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go.viam.com/slamlog/record"
)

// A Reader decodes log sources into a Store.
type Reader struct {
	decoder      record.Decoder
	maxLineBytes int
	logger       golog.Logger
}

// NewReader returns a reader for the given config. A nil logger discards log output.
func NewReader(cfg Config, logger golog.Logger) (*Reader, error) {
	if err := cfg.Validate("robotlog"); err != nil {
		return nil, err
	}
	format, err := record.ParseScanFormat(cfg.ScanFormat)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reader{
		decoder:      record.Decoder{ScanFormat: format},
		maxLineBytes: cfg.MaxLineBytes,
		logger:       logger,
	}, nil
}

type decoded struct {
	kind  record.Kind
	value record.Value
}

// Read runs one pass over src into store. The whole source is decoded before anything is applied,
// so a malformed line leaves the store as it was and returns a *record.ParseError naming the line.
func (r *Reader) Read(store *Store, src io.Reader) error {
	in := bufio.NewReader(src)
	var (
		records []decoded
		lineNum int
		skipped = map[string]bool{}
	)
	for {
		line, err := readLine(in, r.maxLineBytes)
		if errors.Is(err, errLineTooLong) {
			return errors.Errorf("line %d is longer than the %d byte limit", lineNum+1, r.maxLineBytes)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "error reading line %d", lineNum+1)
		}
		if line == "" && err != nil {
			break
		}
		lineNum++

		kind, v, decodeErr := r.decoder.DecodeLine(line)
		if decodeErr != nil {
			var parseErr *record.ParseError
			if errors.As(decodeErr, &parseErr) {
				parseErr.Line = lineNum
			}
			return decodeErr
		}
		if kind == record.KindNone {
			r.logSkipped(skipped, line, lineNum)
		} else {
			records = append(records, decoded{kind, v})
		}
		if err != nil {
			break
		}
	}

	store.BeginPass()
	kinds := map[string]int{}
	for _, rec := range records {
		if err := store.Apply(rec.kind, rec.value); err != nil {
			return err
		}
		kinds[rec.kind.String()]++
	}
	r.logger.Debugw("finished reading robot log", "lines", lineNum, "kinds", kinds)
	return nil
}

// logSkipped logs the first skipped line of each unknown tag, or of each unknown sub-type of a
// known tag.
func (r *Reader) logSkipped(skipped map[string]bool, line string, lineNum int) {
	tokens := strings.Fields(line)
	switch {
	case len(tokens) == 0:
	case len(tokens) > 1 && record.HasSubtype(tokens[0]):
		if key := tokens[0] + " " + tokens[1]; !skipped[key] {
			skipped[key] = true
			r.logger.Debugw("skipping unrecognized record sub-type", "tag", tokens[0], "subtype", tokens[1], "line", lineNum)
		}
	case !skipped[tokens[0]]:
		skipped[tokens[0]] = true
		r.logger.Debugw("skipping unrecognized record tag", "tag", tokens[0], "line", lineNum)
	}
}

var errLineTooLong = errors.New("line too long")

// readLine returns the next line with its newline. With a positive limit, a line longer than limit
// bytes fails with errLineTooLong after buffering at most one chunk past the limit.
func readLine(in *bufio.Reader, limit int) (string, error) {
	var line []byte
	for {
		chunk, err := in.ReadSlice('\n')
		line = append(line, chunk...)
		if limit > 0 && len(line) > limit {
			return "", errLineTooLong
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return string(line), err
		}
	}
}

// ReadAll reads each source into store in order, one pass per source.
func (r *Reader) ReadAll(store *Store, sources ...io.Reader) error {
	for i, src := range sources {
		if err := r.Read(store, src); err != nil {
			return errors.Wrapf(err, "source %d", i)
		}
	}
	return nil
}
