// package formatter provides functions to export the dislike store to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ohess/heartbroken/internal/store"
)

// Format names one of the supported export formats.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat validates a format name from user input.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatCSV, FormatMarkdown, FormatText:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("unknown export format %q, expected csv, markdown, or text", raw)
	}
}

// ExportToCSV converts dislike entries to CSV format with columns: Kind, ID
func ExportToCSV(entries []store.Entry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{string(entry.Kind()), entry.ID()}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts dislike entries to Markdown format, grouped by kind
func ExportToMarkdown(entries []store.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Dislikes\n\n")
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n", len(entries)))

	for _, kind := range []store.Kind{store.KindArtist, store.KindAlbum, store.KindTrack} {
		ids := idsOfKind(entries, kind)
		if len(ids) == 0 {
			continue
		}

		buf.WriteString(fmt.Sprintf("\n## %ss\n\n", capitalize(string(kind))))
		for i, id := range ids {
			buf.WriteString(fmt.Sprintf("%d. `%s`\n", i+1, id))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts dislike entries to plain text format
func ExportToText(entries []store.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dislikes: %d\n\n", len(entries)))
	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, entry.Kind(), entry.ID()))
	}

	return buf.Bytes(), nil
}

// Export renders the entries in the given format.
func Export(entries []store.Entry, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatMarkdown:
		return ExportToMarkdown(entries)
	case FormatText:
		return ExportToText(entries)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// WriteExport renders the entries and writes them to the given path.
func WriteExport(entries []store.Entry, format Format, path string) error {
	data, err := Export(entries, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func idsOfKind(entries []store.Entry, kind store.Kind) []string {
	var ids []string
	for _, entry := range entries {
		if entry.Kind() == kind {
			ids = append(ids, entry.ID())
		}
	}
	return ids
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
