// Package record persists practice records as an append-only text file.
//
// Each line holds one session:
//
//	YYYY-MM-DD HH:MM:SS scale speed1 speed2 dist len charset w0 w1 ... w41
package record

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// fixedFields counts the whitespace-separated fields before the weights.
const fixedFields = 8

// LoadLast parses the last non-empty line of the file at path. A malformed
// line is an error; callers must never generate from a half-parsed record.
func LoadLast(path string) (model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Record{}, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			last = scanner.Text()
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Record{}, fmt.Errorf("reading %q: %w", path, err)
	}
	if last == "" {
		return model.Record{}, fmt.Errorf("file %q is empty", path)
	}

	rec, err := Parse(last)
	if err != nil {
		return model.Record{}, fmt.Errorf("last line of %q: %w", path, err)
	}
	return rec, nil
}

// LoadAll parses every non-empty line of the file at path, in order. Any
// malformed line is an error.
func LoadAll(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	var recs []model.Record
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		rec, err := Parse(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return recs, nil
}

// Parse converts one record line into a Record.
func Parse(line string) (model.Record, error) {
	fields := strings.Fields(line)
	if len(fields) < fixedFields+1 {
		return model.Record{}, fmt.Errorf("want at least %d fields, got %d",
			fixedFields+1, len(fields))
	}

	ts, err := time.ParseInLocation(timeLayout, fields[0]+" "+fields[1], time.Local)
	if err != nil {
		return model.Record{}, fmt.Errorf("cannot parse datetime: %w", err)
	}

	var rec model.Record
	rec.Time = ts

	floats := []*float64{&rec.Scale, &rec.Speed1, &rec.Speed2, &rec.Dist, &rec.Len}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return model.Record{}, fmt.Errorf("field %d: %w", 2+i, err)
		}
		*dst = v
	}

	rec.Charset = fields[7]
	if len(rec.Charset) > charset.MaxLen {
		return model.Record{}, fmt.Errorf("charset label longer than %d characters", charset.MaxLen)
	}

	weightFields := fields[fixedFields:]
	if len(weightFields) > charset.Size {
		return model.Record{}, fmt.Errorf("too many weights (max %d)", charset.Size)
	}
	for i, field := range weightFields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return model.Record{}, fmt.Errorf("weight %d: %w", i, err)
		}
		rec.Weights[i] = v
	}

	return rec, nil
}

// Append writes rec as one line at the end of the file at path, creating
// the file if needed.
func Append(path string, rec model.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(Format(rec) + "\n"); err != nil {
		return fmt.Errorf("cannot write to %q: %w", path, err)
	}
	return nil
}

// Format renders rec as a record line. Weights without a fractional part
// print without a decimal point to keep the history file compact.
func Format(rec model.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %.3f %.1f %.1f %.0f %.0f %s",
		rec.Time.Format(timeLayout), rec.Scale, rec.Speed1, rec.Speed2,
		rec.Dist, rec.Len, rec.Charset)
	for _, w := range rec.Weights {
		if isWholeNumber(w) {
			fmt.Fprintf(&b, " %.0f", w)
		} else {
			fmt.Fprintf(&b, " %.3f", w)
		}
	}
	return b.String()
}

// HasContent reports whether the file at path exists and is non-empty. A
// missing file simply has no content; only I/O trouble is an error.
func HasContent(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}

func isWholeNumber(f float64) bool {
	if math.Abs(f) < 1e-30 {
		return true
	}
	return f == math.Trunc(f)
}
