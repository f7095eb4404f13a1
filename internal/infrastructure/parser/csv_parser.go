package parser

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

const utf8BOM = '\uFEFF'

// csvKeys identifier columns, checked for repeats within the file
type csvKeys struct {
	CustomerID string `csv:"customer_id"`
	ProductID  string `csv:"product_id"`
}

type csvParser struct {
	logger *zap.Logger
}

// parse reads a comma separated file with a header line. Every line must have
// as many fields as the header.
func (p *csvParser) parse(ctx context.Context, path string) (*entity.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("open csv: %w", err)}
	}
	defer file.Close()

	reader, err := skipBOM(bufio.NewReader(file))
	if err != nil {
		return nil, &entity.ParseError{Path: path, Err: err}
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(reader))
	if errors.Is(err, io.EOF) {
		return nil, &entity.ParseError{Path: path, Err: errNoHeader}
	}
	if err != nil {
		return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	columns := headerNames(dec.Header(), len(dec.Header()))
	sheet := &entity.Sheet{Source: path, Columns: columns}
	ids := newIDTracker()

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var keys csvKeys
		err := dec.Decode(&keys)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("record %d: %w", n, err)}
		}

		raw := dec.Record()
		if isEmptyRow(raw) {
			continue
		}

		record := entity.NewRecord()
		for i, name := range columns {
			record.Set(name, entity.ParseValue(raw[i]))
		}
		sheet.Rows = append(sheet.Rows, record)
		ids.add(keys.CustomerID, keys.ProductID)
	}
	sheet.DuplicateIDs = ids.dups

	p.logger.Debug("csv parsed",
		zap.String("path", path),
		zap.Strings("columns", columns),
		zap.Int("rows", len(sheet.Rows)),
	)
	return sheet, nil
}

func skipBOM(r *bufio.Reader) (io.Reader, error) {
	ch, _, err := r.ReadRune()
	if errors.Is(err, io.EOF) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if ch != utf8BOM {
		if err := r.UnreadRune(); err != nil {
			return nil, err
		}
	}
	return r, nil
}
