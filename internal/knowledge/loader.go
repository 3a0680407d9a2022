// Package knowledge loads the FOI response library and the team directory
// from CSV files. Both are read fresh on every triage invocation.
package knowledge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxLibraryRows caps how many historical responses are loaded; rows beyond
// the cap are ignored in source order.
const MaxLibraryRows = 50

// ErrMissingColumn indicates a CSV file lacks a required column.
var ErrMissingColumn = errors.New("required column missing")

// Record is one historical FOI response document.
type Record struct {
	ID    string
	Title string
	Text  string
	Link  string
}

// TeamDirectory maps team names to officer contact addresses, preserving
// the source file's row order.
type TeamDirectory struct {
	Names    []string
	Contacts map[string]string
}

// Loader reads the knowledge CSV files from fixed paths.
type Loader struct {
	LibraryPath string
	TeamsPath   string
}

// Library returns up to MaxLibraryRows historical responses in source order.
func (l *Loader) Library() ([]Record, error) {
	rows, cols, err := readCSV(l.LibraryPath, "Identifier", "Document Title", "Document Text", "Document Link")
	if err != nil {
		return nil, fmt.Errorf("read library %s failed: %w", l.LibraryPath, err)
	}

	records := make([]Record, 0, min(len(rows), MaxLibraryRows))
	for _, row := range rows {
		if len(records) >= MaxLibraryRows {
			break
		}
		records = append(records, Record{
			ID:    row[cols["Identifier"]],
			Title: row[cols["Document Title"]],
			Text:  row[cols["Document Text"]],
			Link:  row[cols["Document Link"]],
		})
	}

	return records, nil
}

// Teams returns the team directory.
func (l *Loader) Teams() (TeamDirectory, error) {
	rows, cols, err := readCSV(l.TeamsPath, "team", "officer_email")
	if err != nil {
		return TeamDirectory{}, fmt.Errorf("read teams %s failed: %w", l.TeamsPath, err)
	}

	dir := TeamDirectory{Contacts: make(map[string]string, len(rows))}
	for _, row := range rows {
		name := row[cols["team"]]
		if _, seen := dir.Contacts[name]; !seen {
			dir.Names = append(dir.Names, name)
		}
		dir.Contacts[name] = row[cols["officer_email"]]
	}

	return dir, nil
}

// FormatLibrary serializes records for embedding into an allocation prompt.
func FormatLibrary(records []Record) string {
	entries := make([]string, 0, len(records))
	for _, r := range records {
		entries = append(entries, fmt.Sprintf("ID: %s\nTitle: %s\nText: %s\nLink: %s", r.ID, r.Title, r.Text, r.Link))
	}

	return strings.Join(entries, "\n\n---\n\n")
}

// readCSV reads all data rows and resolves the required header columns to
// their indices.
func readCSV(path string, required ...string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("os.Open failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv.ReadAll failed: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file, expected header %v", ErrMissingColumn, required)
	}

	cols := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	return all[1:], cols, nil
}
