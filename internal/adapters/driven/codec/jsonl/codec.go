// Package jsonl reads and writes records as JSON Lines, one object per line
// with the keys date, title, video_id, text, timestamp and url.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Name is the format name.
const Name = "jsonl"

// maxLineSize bounds a single encoded record.
const maxLineSize = 1 << 20

// Ensure Codec implements the interface.
var _ driven.RecordCodec = Codec{}

// Codec is the JSON Lines record codec.
type Codec struct{}

// New returns the JSON Lines codec.
func New() Codec {
	return Codec{}
}

// Name returns "jsonl".
func (Codec) Name() string {
	return Name
}

// line fixes the key order of the interchange format.
type line struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	VideoID   string `json:"video_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// NewWriter returns a buffered writer. Call Flush when done.
func (Codec) NewWriter(w io.Writer) driven.RecordWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &writer{buf: bw, enc: enc}
}

type writer struct {
	buf *bufio.Writer
	enc *json.Encoder
}

func (w *writer) Write(rec domain.Record) error {
	return w.enc.Encode(line{
		Date:      rec.Date,
		Title:     rec.Title,
		VideoID:   rec.VideoID,
		Text:      rec.Text,
		Timestamp: rec.Timestamp,
		URL:       rec.URL,
	})
}

func (w *writer) Flush() error {
	return w.buf.Flush()
}

// NewReader returns an iterator over the records in r.
// Blank lines are skipped. A line that is not a valid record stops the
// iteration with an error naming the line number.
func (Codec) NewReader(r io.Reader) driven.RecordIterator {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &reader{scanner: sc}
}

type reader struct {
	scanner *bufio.Scanner
	lineNo  int
}

func (r *reader) Next(ctx context.Context) (domain.Record, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Record{}, err
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return domain.Record{}, fmt.Errorf("reading line %d: %w", r.lineNo+1, err)
			}
			return domain.Record{}, io.EOF
		}
		r.lineNo++

		raw := strings.TrimSpace(r.scanner.Text())
		if raw == "" {
			continue
		}

		var l line
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return domain.Record{}, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidInput, r.lineNo, err)
		}
		if l.VideoID == "" || l.Text == "" {
			return domain.Record{}, fmt.Errorf("%w: line %d: video_id and text are required", domain.ErrInvalidInput, r.lineNo)
		}
		if l.Date == "" {
			l.Date = domain.UnknownDate
		}

		return domain.Record{
			VideoID:   l.VideoID,
			Date:      l.Date,
			Title:     l.Title,
			Text:      l.Text,
			Timestamp: l.Timestamp,
			URL:       l.URL,
		}, nil
	}
}
