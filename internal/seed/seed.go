// Package seed loads catalogue seed files and imports them into the store.
//
// A seed file is a gzipped CSV document with the header
// category,name,description,stock,price followed by one product per line.
// Categories are referenced by name and created on demand during import.
package seed

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is the required first record of a seed file.
var Header = []string{"category", "name", "description", "stock", "price"}

// Row is one product entry of a seed file.
type Row struct {
	Category    string
	Name        string
	Description string
	Stock       int
	Price       float64
}

// Catalog is the parsed content of a seed file.
type Catalog struct {
	Rows []Row
}

// CategoryNames returns the distinct category names in first-seen order.
func (c *Catalog) CategoryNames() []string {
	seen := make(map[string]struct{}, len(c.Rows))
	names := make([]string, 0)
	for _, row := range c.Rows {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		names = append(names, row.Category)
	}
	return names
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped seed file and returns its catalogue.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// ErrInvalidSeed is returned when a seed file is malformed.
var ErrInvalidSeed = errors.New("invalid seed file")

// Parse reads a gzipped seed document from r.
func Parse(ctx context.Context, r io.Reader) (*Catalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	reader := csv.NewReader(gzipReader)
	reader.FieldsPerRecord = len(Header)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidSeed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	for i, column := range Header {
		if strings.ToLower(strings.TrimSpace(header[i])) != column {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", ErrInvalidSeed, i+1, header[i], column)
		}
	}

	catalog := &Catalog{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}

		line, _ := reader.FieldPos(0)
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSeed, line, err)
		}
		catalog.Rows = append(catalog.Rows, row)
	}

	return catalog, nil
}

func parseRow(record []string) (Row, error) {
	row := Row{
		Category:    strings.TrimSpace(record[0]),
		Name:        strings.TrimSpace(record[1]),
		Description: strings.TrimSpace(record[2]),
	}

	if row.Category == "" {
		return Row{}, errors.New("category is required")
	}
	if row.Name == "" {
		return Row{}, errors.New("name is required")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return Row{}, fmt.Errorf("stock %q is not an integer", record[3])
	}
	if stock < 0 {
		return Row{}, fmt.Errorf("stock %d must not be negative", stock)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("price %q is not a number", record[4])
	}
	if price < 0 {
		return Row{}, fmt.Errorf("price %v must not be negative", price)
	}

	row.Stock = stock
	row.Price = price
	return row, nil
}
