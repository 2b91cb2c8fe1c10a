// Package loader reads questionnaire spreadsheets into a response matrix.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/godilite/survey-stats/internal/survey"
	"github.com/xuri/excelize/v2"
)

var (
	ErrSourceNotFound     = errors.New("data source not found")
	ErrUnsupportedFormat  = errors.New("unsupported data source format")
	ErrNoQuestionColumns  = errors.New("no question columns found")
	ErrDuplicateQuestions = errors.New("duplicate question column")
)

const byteOrderMark = "\ufeff"

type Options struct {
	Sheet string
}

type Option func(*Options)

// WithSheet selects a worksheet by name. The first sheet is used otherwise.
func WithSheet(name string) Option {
	return func(o *Options) {
		o.Sheet = name
	}
}

// LoadFile reads an .xlsx/.xlsm workbook or a .csv file into a matrix.
func LoadFile(path string, opts ...Option) (*survey.Matrix, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path, options.Sheet)
	case ".csv":
		records, err = readCSVFile(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	m, err := FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadCSV parses CSV data from r into a matrix.
func ReadCSV(r io.Reader) (*survey.Matrix, error) {
	records, err := parseCSV(r)
	if err != nil {
		return nil, err
	}
	return FromRecords(records)
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

// FromRecords treats the first record as the header and keeps the columns
// named Q1..Q17. A leading UTF-8 byte order mark on the header is ignored.
// Rows whose question cells are all empty are skipped; short rows are
// padded with empty cells, which fail validation.
func FromRecords(records [][]string) (*survey.Matrix, error) {
	if len(records) == 0 {
		return nil, ErrNoQuestionColumns
	}

	var questions []survey.Question
	var indexes []int
	seen := make(map[survey.Question]bool)
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, byteOrderMark)
		}
		q, err := survey.ParseQuestion(strings.TrimSpace(h))
		if err != nil {
			continue
		}
		if seen[q] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestions, q)
		}
		seen[q] = true
		questions = append(questions, q)
		indexes = append(indexes, i)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionColumns
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(indexes))
		empty := true
		for j, idx := range indexes {
			if idx < len(rec) {
				row[j] = rec[idx]
			}
			if row[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return survey.NewMatrix(questions, rows)
}
