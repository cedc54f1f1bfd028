package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"overtrack/worklog"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Drafts         []worklog.Draft
}

// Run reads every file and maps its rows to entry drafts. An empty format is
// inferred per file from its extension.
func Run(paths []string, format string) (*Result, error) {
	result := &Result{Drafts: make([]worklog.Draft, 0, 256)}
	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			draft, ok, mapErr := MapRecord(record)
			if mapErr != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), mapErr)
			}
			if !ok {
				result.RowsSkipped++
				continue
			}

			result.RowsMapped++
			result.Drafts = append(result.Drafts, draft)
		}
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv", "txt":
		return "csv", nil
	case "tsv":
		return "tsv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
