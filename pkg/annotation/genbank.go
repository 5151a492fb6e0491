package annotation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/featuremap/pkg/feature"
)

const (
	gbKeyColumn   = 5
	gbValueColumn = 21
)

// ReadGenBank reads the first record of a GenBank flat file.
//
// Only what a feature map needs is parsed: the LOCUS name, length and
// topology, and the FEATURES table. Locations may use complement(), join()
// and order() and the partial markers < and >; a joined location is reduced
// to the span from its first to its last part, which on circular records may
// cross the origin. When LOCUS carries no length, the ORIGIN sequence is
// counted instead.
func ReadGenBank(r io.Reader) (*Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	rec := &Record{}
	var (
		section  string
		cur      *Feature
		location strings.Builder
		qualKey  string
		qualVal  strings.Builder
		inQuote  bool
		seqLen   int
		lineNo   int
		locLine  int
	)

	flushQualifier := func() {
		if cur != nil && qualKey != "" {
			cur.add(qualKey, strings.Trim(qualVal.String(), `"`))
		}
		qualKey, inQuote = "", false
		qualVal.Reset()
	}
	flushFeature := func() error {
		flushQualifier()
		if cur == nil {
			return nil
		}
		if err := applyLocation(cur, location.String(), rec.Circular); err != nil {
			return parseError(locLine, "%v", err)
		}
		rec.Features = append(rec.Features, *cur)
		cur = nil
		location.Reset()
		return nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if line == "//" {
			break
		}
		if line != "" && line[0] != ' ' {
			if err := flushFeature(); err != nil {
				return nil, err
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			section = fields[0]
			if section == "LOCUS" {
				parseLocus(rec, fields)
			}
			continue
		}

		switch section {
		case "FEATURES":
			if inQuote {
				qualVal.WriteByte(' ')
				qualVal.WriteString(strings.TrimSpace(line))
				inQuote = strings.Count(qualVal.String(), `"`)%2 == 1
				continue
			}
			if len(line) > gbKeyColumn && line[gbKeyColumn] != ' ' {
				if err := flushFeature(); err != nil {
					return nil, err
				}
				fields := strings.Fields(line)
				if len(fields) < 2 {
					return nil, parseError(lineNo, "feature %q has no location", fields[0])
				}
				cur = &Feature{Type: fields[0]}
				location.WriteString(fields[1])
				locLine = lineNo
				continue
			}
			if cur == nil {
				continue
			}
			body := strings.TrimSpace(line)
			if strings.HasPrefix(body, "/") {
				flushQualifier()
				key, val, hasVal := strings.Cut(body[1:], "=")
				qualKey = key
				if hasVal {
					qualVal.WriteString(val)
					inQuote = strings.Count(val, `"`)%2 == 1
				}
				continue
			}
			if qualKey == "" {
				location.WriteString(body)
			}
		case "ORIGIN":
			for _, c := range line {
				if unicode.IsLetter(c) {
					seqLen++
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, parseError(lineNo, "%v", err)
	}
	if err := flushFeature(); err != nil {
		return nil, err
	}
	if rec.Length == 0 {
		rec.Length = seqLen
	}
	if rec.Length == 0 && rec.ID == "" && len(rec.Features) == 0 {
		return nil, parseError(lineNo, "no GenBank record found")
	}
	return rec, nil
}

func parseLocus(rec *Record, fields []string) {
	if len(fields) > 1 {
		rec.ID = fields[1]
	}
	for i, f := range fields {
		switch strings.ToLower(f) {
		case "bp", "aa":
			if i > 0 {
				if n, err := strconv.Atoi(fields[i-1]); err == nil {
					rec.Length = n
				}
			}
		case "circular":
			rec.Circular = true
		}
	}
}

// applyLocation parses a GenBank location string into f.
func applyLocation(f *Feature, loc string, circular bool) error {
	loc = strings.ReplaceAll(loc, " ", "")
	f.Strand = feature.Forward
	if inner, ok := unwrapCall(loc, "complement"); ok {
		f.Strand = feature.Reverse
		loc = inner
	}
	for _, fn := range []string{"join", "order"} {
		if inner, ok := unwrapCall(loc, fn); ok {
			loc = inner
		}
	}

	parts := strings.Split(loc, ",")
	spans := make([][2]int, 0, len(parts))
	reversed := false
	for _, p := range parts {
		if inner, ok := unwrapCall(p, "complement"); ok {
			p = inner
			reversed = true
		}
		start, end, err := parseSpan(p)
		if err != nil {
			return err
		}
		spans = append(spans, [2]int{start, end})
	}
	if reversed && f.Strand == feature.Forward {
		f.Strand = feature.Reverse
	}

	f.Start, f.End = spans[0][0], spans[len(spans)-1][1]
	if reversed && len(spans) > 1 && spans[0][0] > spans[len(spans)-1][0] {
		// join(complement(), complement()) lists parts 3' to 5'.
		f.Start, f.End = spans[len(spans)-1][0], spans[0][1]
	}
	if f.End < f.Start && !circular {
		f.Start, f.End = minSpan(spans), maxSpan(spans)
	}
	return nil
}

func unwrapCall(s, fn string) (string, bool) {
	if strings.HasPrefix(s, fn+"(") && strings.HasSuffix(s, ")") {
		return s[len(fn)+1 : len(s)-1], true
	}
	return s, false
}

// parseSpan parses "a..b", "a^b" or "a" (1-based, inclusive) into a 0-based
// half-open span.
func parseSpan(s string) (int, int, error) {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:] // remote accession prefix
	}
	if a, b, ok := strings.Cut(s, ".."); ok {
		start, err1 := strconv.Atoi(a)
		end, err2 := strconv.Atoi(b)
		if err1 != nil || err2 != nil {
			return 0, 0, fmt.Errorf("invalid location %q", s)
		}
		return start - 1, end, nil
	}
	if a, _, ok := strings.Cut(s, "^"); ok {
		pos, err := strconv.Atoi(a)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid location %q", s)
		}
		return pos, pos, nil
	}
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid location %q", s)
	}
	return pos - 1, pos, nil
}

func minSpan(spans [][2]int) int {
	m := spans[0][0]
	for _, s := range spans[1:] {
		m = min(m, s[0])
	}
	return m
}

func maxSpan(spans [][2]int) int {
	m := spans[0][1]
	for _, s := range spans[1:] {
		m = max(m, s[1])
	}
	return m
}
