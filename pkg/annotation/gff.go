package annotation

import (
	"bufio"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/featuremap/pkg/feature"
)

// ReadGFF reads a GFF3 file. Features of every sequence are returned; the
// record ID is the first sequence seen. The length comes from the matching
// ##sequence-region pragma, or else from the furthest feature end.
// A region feature with Is_circular=true marks the record circular.
func ReadGFF(r io.Reader) (*Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	rec := &Record{}
	regions := make(map[string]int)
	maxEnd, lineNo := 0, 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##FASTA"):
			return finishGFF(rec, regions, maxEnd), nil
		case strings.HasPrefix(line, "##sequence-region"):
			fields := strings.Fields(line)
			if len(fields) == 4 {
				if end, err := strconv.Atoi(fields[3]); err == nil {
					regions[fields[1]] = end
				}
			}
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != 9 {
			return nil, parseError(lineNo, "expected 9 tab-separated columns, got %d", len(cols))
		}
		start, err1 := strconv.Atoi(cols[3])
		end, err2 := strconv.Atoi(cols[4])
		if err1 != nil || err2 != nil {
			return nil, parseError(lineNo, "invalid coordinates %q..%q", cols[3], cols[4])
		}
		strand, err := feature.ParseStrand(cols[6])
		if err != nil {
			return nil, parseError(lineNo, "%v", err)
		}

		f := Feature{Type: cols[2], Start: start - 1, End: end, Strand: strand}
		if cols[1] != "." {
			f.add("source", cols[1])
		}
		if cols[5] != "." {
			f.add("score", cols[5])
		}
		if err := parseAttributes(&f, cols[8]); err != nil {
			return nil, parseError(lineNo, "%v", err)
		}

		if rec.ID == "" {
			rec.ID = cols[0]
		}
		if f.Type == "region" && strings.EqualFold(f.Qualifier("Is_circular"), "true") {
			rec.Circular = true
		}
		maxEnd = max(maxEnd, end)
		rec.Features = append(rec.Features, f)
	}
	if err := sc.Err(); err != nil {
		return nil, parseError(lineNo, "%v", err)
	}
	return finishGFF(rec, regions, maxEnd), nil
}

func finishGFF(rec *Record, regions map[string]int, maxEnd int) *Record {
	if n, ok := regions[rec.ID]; ok {
		rec.Length = n
	} else {
		rec.Length = maxEnd
	}
	return rec
}

// parseAttributes parses "key=v1,v2;key2=v3" with percent-decoding. The
// Name attribute is also exposed as "label".
func parseAttributes(f *Feature, s string) error {
	if s == "." || s == "" {
		return nil
	}
	for _, kv := range strings.Split(s, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, val, _ := strings.Cut(kv, "=")
		for _, v := range strings.Split(val, ",") {
			dec, err := url.PathUnescape(v)
			if err != nil {
				return err
			}
			f.add(key, dec)
		}
	}
	if name := f.Qualifier("Name"); name != "" && !f.Has("label") {
		f.add("label", name)
	}
	return nil
}
