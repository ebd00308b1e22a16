// Package docid holds immutable sets of canonical identifiers and the
// element-kind mask used by the DocId list writer.
package docid

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/spf13/afero"
)

var idPattern = regexp.MustCompile(`^[ANTFPME]:\S+$`)

// Set is an immutable set of DocIds. The zero value is empty.
type Set struct {
	ids map[string]struct{}
}

// NewSet validates ids and returns them as a set.
func NewSet(ids ...string) (Set, error) {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !Valid(id) {
			return Set{}, errors.Newf(errors.ErrConfigInvalid, "invalid docid %q", id)
		}
		m[id] = struct{}{}
	}
	return Set{ids: m}, nil
}

// MustSet is NewSet for literals known to be valid.
func MustSet(ids ...string) Set {
	s, err := NewSet(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

// Valid reports whether id is a well-formed DocId.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}

// Contains reports exact membership.
func (s Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns the ids in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Parse reads one id per line. Blank lines and lines starting with '#' are
// ignored, as is anything after " #" on a line. Any malformed line fails
// the whole parse.
func Parse(r io.Reader) (Set, error) {
	s := bufio.NewScanner(r)
	var ids []string
	lineNo := 0

	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimRight(s.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if !Valid(line) {
			return Set{}, errors.Newf(errors.ErrConfigInvalid, "invalid docid %q on line %d", line, lineNo)
		}
		ids = append(ids, line)
	}

	if err := s.Err(); err != nil {
		return Set{}, errors.Wrap(err, errors.ErrConfigInvalid, "scan docid list")
	}

	return NewSet(ids...)
}

// LoadFile reads a list file from fs.
func LoadFile(fs afero.Fs, path string) (Set, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Set{}, errors.Wrapf(err, errors.ErrConfigInvalid, "open docid list %s", path)
	}
	defer func() { _ = f.Close() }()

	set, err := Parse(f)
	if err != nil {
		return Set{}, errors.Wrapf(err, errors.ErrConfigInvalid, "parse docid list %s", path)
	}
	return set, nil
}

// Resolve turns a configured list source into a set. A source naming an
// existing file is read as a list file; a source made only of DocIds
// separated by commas or semicolons is taken as an inline list; anything
// else is treated as a missing file.
func Resolve(fs afero.Fs, source string) (Set, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Set{}, nil
	}
	if ok, _ := afero.Exists(fs, source); ok {
		return LoadFile(fs, source)
	}
	if ids, ok := inline(source); ok {
		return NewSet(ids...)
	}
	return Set{}, errors.New(errors.ErrConfigInvalid, fmt.Sprintf("docid list %s does not exist", source)).
		WithDetail("source", source)
}

func inline(source string) ([]string, bool) {
	fields := strings.FieldsFunc(source, func(r rune) bool { return r == ',' || r == ';' })
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !Valid(f) {
			return nil, false
		}
		ids = append(ids, f)
	}
	return ids, len(ids) > 0
}
