package annotation

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/featuremap/pkg/feature"
)

// ReadBED reads BED3 to BED6 lines. Columns beyond the sixth are ignored.
// The name column becomes the "label" qualifier. Every feature has type
// "region"; the length is the furthest feature end.
func ReadBED(r io.Reader) (*Record, error) {
	sc := bufio.NewScanner(r)
	rec := &Record{}
	lineNo := 0

	for sc.Scan() {
		lineNo++
		fields := bedFields(sc.Text())
		if fields == nil {
			continue
		}
		if len(fields) < 3 {
			return nil, parseError(lineNo, "expected at least 3 columns, got %d", len(fields))
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return nil, parseError(lineNo, "invalid coordinates %q %q", fields[1], fields[2])
		}

		f := Feature{Type: "region", Start: start, End: end}
		if len(fields) > 3 && fields[3] != "." {
			f.add("label", fields[3])
		}
		if len(fields) > 4 {
			f.add("score", fields[4])
		}
		if len(fields) > 5 {
			s, err := feature.ParseStrand(fields[5])
			if err != nil {
				return nil, parseError(lineNo, "%v", err)
			}
			f.Strand = s
		}

		if rec.ID == "" {
			rec.ID = fields[0]
		}
		rec.Length = max(rec.Length, end)
		rec.Features = append(rec.Features, f)
	}
	if err := sc.Err(); err != nil {
		return nil, parseError(lineNo, "%v", err)
	}
	return rec, nil
}

// bedFields splits a BED-family line on tabs, or on spaces when it has no
// tabs. Blank, comment, track and browser lines return nil.
func bedFields(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
		return nil
	}
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}
