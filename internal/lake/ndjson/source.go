// Package ndjson streams newline-delimited JSON records from files matching
// a path pattern. Decoding is left to the caller; the source only deals in
// raw lines.
package ndjson

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/soundlake/lakehouse/internal/lake"
)

const maxLineSize = 4 * 1024 * 1024

type Source struct {
	fs afero.Fs
}

func NewSource(fs afero.Fs) *Source {
	return &Source{fs: fs}
}

// Each calls fn once per non-empty line of every file matching pattern, in
// lexical file order. The line buffer is only valid for the duration of the
// call. Any error from fn stops the scan and is returned as-is.
func (s *Source) Each(ctx context.Context, pattern string, fn func(line []byte) error) error {
	matches, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return fmt.Errorf("%w: glob %s: %v", lake.ErrStorage, pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no input matching %s", lake.ErrStorage, pattern)
	}
	sort.Strings(matches)

	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.eachLine(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) eachLine(name string, fn func(line []byte) error) error {
	f, err := s.fs.Open(name)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", lake.ErrStorage, name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %v", lake.ErrStorage, name, err)
	}
	return nil
}
