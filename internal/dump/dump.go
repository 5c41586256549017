// Package dump writes parsed records to local files.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteJSON writes records as one indented JSON array.
func WriteJSON(w io.Writer, records []*model.ParsedRecord) error {
	if records == nil {
		records = []*model.ParsedRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records as JSON: %w", err)
	}
	return nil
}

// WriteMsgpack writes records as a msgpack array of maps keyed like the JSON
// output.
func WriteMsgpack(w io.Writer, records []*model.ParsedRecord) error {
	trees := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		tree, err := rec.Tree()
		if err != nil {
			return fmt.Errorf("failed to convert record %s: %w", rec.Filename, err)
		}
		trees = append(trees, tree)
	}
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(trees); err != nil {
		return fmt.Errorf("failed to encode records as msgpack: %w", err)
	}
	return nil
}

// ToFile creates path and hands it to write.
func ToFile(path string, records []*model.ParsedRecord, write func(io.Writer, []*model.ParsedRecord) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f, records)
}
