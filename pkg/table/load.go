package table

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/covview/errors"
)

// record mirrors Row with an optional ID so missing IDs can be filled in.
type record struct {
	ID         *int   `json:"id" yaml:"id"`
	SeqID      string `json:"seqid" yaml:"seqid"`
	Source     string `json:"source" yaml:"source"`
	Type       string `json:"type" yaml:"type"`
	Start      int    `json:"start" yaml:"start"`
	End        int    `json:"end" yaml:"end"`
	Score      string `json:"score" yaml:"score"`
	Strand     string `json:"strand" yaml:"strand"`
	Phase      string `json:"phase" yaml:"phase"`
	Attributes string `json:"attributes" yaml:"attributes"`
}

// Load reads a feature table. The format is chosen by extension: .json,
// .yaml/.yml or .xlsx (first sheet, header row names the columns).
func Load(path string) ([]Row, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		rows, err := loadXLSX(path)
		if err != nil {
			return nil, errors.TableLoad(path, err)
		}
		return rows, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.TableLoad(path, err)
	}

	var records []record
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &records)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = fmt.Errorf("unsupported table format '%s'", ext)
	}
	if err != nil {
		return nil, errors.TableLoad(path, err)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		id := i
		if rec.ID != nil {
			id = *rec.ID
		}
		rows[i] = Row{
			ID:         id,
			SeqID:      rec.SeqID,
			Source:     rec.Source,
			Type:       rec.Type,
			Start:      rec.Start,
			End:        rec.End,
			Score:      rec.Score,
			Strand:     rec.Strand,
			Phase:      rec.Phase,
			Attributes: rec.Attributes,
		}
	}
	return rows, nil
}

func loadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []Row{}, nil
	}

	header := make(map[string]int)
	for i, name := range cells[0] {
		header[normalizeColumn(name)] = i
	}
	for _, required := range []string{"seqid", "start", "end"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("missing column '%s'", required)
		}
	}

	get := func(row []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	atoi := func(row []string, col string, line int) (int, error) {
		v := get(row, col)
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("row %d: column '%s': %w", line, col, err)
		}
		return n, nil
	}

	rows := make([]Row, 0, len(cells)-1)
	for i, cell := range cells[1:] {
		line := i + 2
		start, err := atoi(cell, "start", line)
		if err != nil {
			return nil, err
		}
		end, err := atoi(cell, "end", line)
		if err != nil {
			return nil, err
		}
		id := len(rows)
		if get(cell, "id") != "" {
			if id, err = atoi(cell, "id", line); err != nil {
				return nil, err
			}
		}
		rows = append(rows, Row{
			ID:         id,
			SeqID:      get(cell, "seqid"),
			Source:     get(cell, "source"),
			Type:       get(cell, "type"),
			Start:      start,
			End:        end,
			Score:      get(cell, "score"),
			Strand:     get(cell, "strand"),
			Phase:      get(cell, "phase"),
			Attributes: get(cell, "attributes"),
		})
	}
	return rows, nil
}
