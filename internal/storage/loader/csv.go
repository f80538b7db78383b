package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/leengari/tabsynth/internal/domain/schema"
)

// ReadCSV reads a comma-delimited file whose first line is the header
func ReadCSV(path, name string) (*schema.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readCSV(file, name)
}

func readCSV(r io.Reader, name string) (*schema.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return schema.NewTable(name, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}

	return buildTable(name, header, records), nil
}
