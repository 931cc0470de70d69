// Package delimited provides a CSV/TSV table source.
//
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/datavis/pkg/sources/delimited"
package delimited

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/source"
)

// Name is the registered source type.
const Name = "delimited"

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}

// Source reads delimited text from a file, or from stdin when the path
// is "-".
type Source struct {
	cfg       source.Config
	delimiter rune
	comment   rune
	in        io.ReadCloser
	logger    *slog.Logger
}

// New creates a delimited source. A nil logger discards output.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger}
}

// Open resolves the delimiter and opens the input.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("path is required")
	}

	delim, err := parseRune("delimiter", cfg.Delimiter)
	if err != nil {
		return err
	}
	if delim == 0 {
		delim = ','
		if strings.EqualFold(filepath.Ext(cfg.Path), ".tsv") {
			delim = '\t'
		}
	}
	comment, err := parseRune("comment", cfg.Comment)
	if err != nil {
		return err
	}

	if cfg.Path == "-" {
		s.in = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(cfg.Path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", cfg.Path, err)
		}
		s.in = f
	}

	s.cfg = cfg
	s.delimiter = delim
	s.comment = comment
	s.logger.Debug("opened delimited source", slog.String("path", cfg.Path), slog.String("delimiter", string(delim)))
	return nil
}

// ReadTable implements source.Source.
func (s *Source) ReadTable(ctx context.Context) (dataset.RawTable, error) {
	if s.in == nil {
		return nil, fmt.Errorf("source not opened")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(s.in, s.delimiter, s.comment)
}

// Close implements source.Source.
func (s *Source) Close() error {
	if s.in == nil {
		return nil
	}
	err := s.in.Close()
	s.in = nil
	return err
}

// Read parses delimited text. Rows of differing length are passed through
// unchanged so the classifier can report them. A comment of 0 disables
// comment lines.
func Read(r io.Reader, delimiter, comment rune) (dataset.RawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var table dataset.RawTable
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse delimited text: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		table = append(table, rec)
	}
	return table, nil
}

func parseRune(field, s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	return r, nil
}

var _ source.Source = (*Source)(nil)
