package helpers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// FakeStore is an in-memory spreadsheet store for unit tests. It models
// documents as named tabs of string rows and honors the subset of A1
// range addressing the services use.
type FakeStore struct {
	mu     sync.Mutex
	docs   map[string]map[string][][]string
	nextID int

	// Shares records GrantWriter calls: fileID -> emails.
	Shares map[string][]string

	// FailOps forces an error for an operation on a tab, keyed
	// "<op>:<tab>" with op one of get, append, update, addtab, grant.
	FailOps map[string]error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		docs:    make(map[string]map[string][][]string),
		Shares:  make(map[string][]string),
		FailOps: make(map[string]error),
	}
}

// Seed creates (or replaces) a tab with the given rows, creating the
// document as needed.
func (f *FakeStore) Seed(docID, tab string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs[docID] == nil {
		f.docs[docID] = make(map[string][][]string)
	}
	f.docs[docID][tab] = rows
}

// Tab returns a copy of a tab's rows, nil when absent.
func (f *FakeStore) Tab(docID, tab string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.docs[docID][tab]
	if !ok {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// HasTab reports whether a document has a tab.
func (f *FakeStore) HasTab(docID, tab string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[docID][tab]
	return ok
}

func (f *FakeStore) GetRange(_ context.Context, spreadsheetID, readRange string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, cells := splitRange(readRange)
	if err := f.failFor("get", tab); err != nil {
		return nil, err
	}
	rows, ok := f.docs[spreadsheetID][tab]
	if !ok {
		return nil, fmt.Errorf("fake: no tab %q in %q", tab, spreadsheetID)
	}

	startRow, _ := parseCell(firstCell(cells))
	if startRow < 1 {
		startRow = 1
	}
	if startRow-1 >= len(rows) {
		return nil, nil
	}

	out := make([][]string, 0, len(rows)-startRow+1)
	for _, row := range rows[startRow-1:] {
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (f *FakeStore) Append(_ context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, _ := splitRange(writeRange)
	if err := f.failFor("append", tab); err != nil {
		return err
	}
	if _, ok := f.docs[spreadsheetID][tab]; !ok {
		return fmt.Errorf("fake: no tab %q in %q", tab, spreadsheetID)
	}
	for _, row := range rows {
		f.docs[spreadsheetID][tab] = append(f.docs[spreadsheetID][tab], stringRow(row))
	}
	return nil
}

func (f *FakeStore) Update(_ context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, cells := splitRange(writeRange)
	if err := f.failFor("update", tab); err != nil {
		return err
	}
	grid, ok := f.docs[spreadsheetID][tab]
	if !ok {
		return fmt.Errorf("fake: no tab %q in %q", tab, spreadsheetID)
	}

	startRow, startCol := parseCell(firstCell(cells))
	if startRow < 1 {
		startRow = 1
	}

	for i, row := range rows {
		r := startRow - 1 + i
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for j, cell := range stringRow(row) {
			c := startCol + j
			for len(grid[r]) <= c {
				grid[r] = append(grid[r], "")
			}
			grid[r][c] = cell
		}
	}
	f.docs[spreadsheetID][tab] = grid
	return nil
}

func (f *FakeStore) CreateSpreadsheet(_ context.Context, title, initialTab string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor("create", title); err != nil {
		return "", "", err
	}
	f.nextID++
	id := fmt.Sprintf("fake-sheet-%d", f.nextID)
	f.docs[id] = map[string][][]string{initialTab: {}}
	return id, "https://docs.google.com/spreadsheets/d/" + id, nil
}

func (f *FakeStore) AddTab(_ context.Context, spreadsheetID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor("addtab", title); err != nil {
		return err
	}
	doc, ok := f.docs[spreadsheetID]
	if !ok {
		return fmt.Errorf("fake: no spreadsheet %q", spreadsheetID)
	}
	if _, exists := doc[title]; exists {
		return fmt.Errorf("fake: tab %q already exists in %q", title, spreadsheetID)
	}
	doc[title] = [][]string{}
	return nil
}

func (f *FakeStore) GrantWriter(_ context.Context, fileID, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor("grant", fileID); err != nil {
		return err
	}
	f.Shares[fileID] = append(f.Shares[fileID], email)
	return nil
}

func (f *FakeStore) failFor(op, target string) error {
	if err, ok := f.FailOps[op+":"+target]; ok {
		return err
	}
	return nil
}

func splitRange(ref string) (tab, cells string) {
	if i := strings.Index(ref, "!"); i != -1 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

func firstCell(cells string) string {
	if i := strings.Index(cells, ":"); i != -1 {
		return cells[:i]
	}
	return cells
}

// parseCell turns "B3" into (3, 1). A missing row number yields row 0,
// meaning the whole column.
func parseCell(ref string) (row, col int) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	for _, ch := range ref[:i] {
		col = col*26 + int(ch-'A'+1)
	}
	if col > 0 {
		col--
	}
	if i < len(ref) {
		row, _ = strconv.Atoi(ref[i:])
	}
	return row, col
}

func stringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = fmt.Sprint(cell)
	}
	return out
}
