package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"graphql-crm/internal/model"
)

// record is one line of a .jsonl fixture. Exactly one field is set.
type record struct {
	Customer *model.CustomerInput `json:"customer"`
	Product  *model.ProductInput  `json:"product"`
	Order    *OrderFixture        `json:"order"`
}

// decode reads a fixture from r. The format is picked from the name:
// a .gz suffix means gzip, then .jsonl means one record per line and
// anything else a single Fixture document.
func decode(ctx context.Context, r io.Reader, name string) (*Fixture, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()

		r = gzipReader
		name = strings.TrimSuffix(name, ".gz")
	}

	if strings.HasSuffix(name, ".jsonl") {
		return decodeLines(ctx, r, name)
	}

	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return &fixture, nil
}

func decodeLines(ctx context.Context, r io.Reader, name string) (*Fixture, error) {
	fixture := &Fixture{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s line %d: %w", name, lineNo, err)
		}

		switch {
		case rec.Customer != nil:
			fixture.Customers = append(fixture.Customers, *rec.Customer)
		case rec.Product != nil:
			fixture.Products = append(fixture.Products, *rec.Product)
		case rec.Order != nil:
			fixture.Orders = append(fixture.Orders, *rec.Order)
		default:
			return nil, fmt.Errorf("%s line %d: expected one of customer, product or order", name, lineNo)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading fixture %s: %w", name, err)
	}

	return fixture, nil
}
