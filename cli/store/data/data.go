package data

import (
	"errors"
	"fmt"
	"sync"

	"datashare/cli/api"
	"datashare/cli/utils"
	"datashare/shared"
)

var ErrInvalidFormat = errors.New("export format must be csv or excel")

// Store holds the tables available to the user, the metadata of the table
// being viewed, and the most recently fetched page of its rows. Nothing is
// cached between pages.
type Store struct {
	api *api.Context

	mu           sync.RWMutex
	tables       []shared.Table
	currentTable *shared.Table
	tableData    []shared.Row
	pagination   shared.Pagination
	loading      bool
	err          string
}

func New(ctx *api.Context) *Store {
	return &Store{api: ctx}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Store) fail(err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = utils.ErrorMessage(err, fallback)
}

func (s *Store) FetchTables() ([]shared.Table, error) {
	s.begin()
	defer s.done()

	tables, err := s.api.GetTables()
	if err != nil {
		s.fail(err, "Failed to fetch tables")
		return nil, err
	}

	s.mu.Lock()
	s.tables = tables
	s.mu.Unlock()
	return tables, nil
}

func (s *Store) FetchTableMetadata(name string) (shared.Table, error) {
	s.begin()
	defer s.done()

	table, err := s.api.GetTable(name)
	if err != nil {
		s.fail(err, "Failed to fetch table metadata")
		return shared.Table{}, err
	}

	s.mu.Lock()
	s.currentTable = &table
	s.mu.Unlock()
	return table, nil
}

// FetchTableData fetches one page of rows. Zero values in query fall back to
// page 1, 10 rows per page, ascending sort.
func (s *Store) FetchTableData(
	name string,
	query shared.TableQuery,
) (shared.TableDataResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.GetTableData(name, query)
	if err != nil {
		s.fail(err, "Failed to fetch table data")
		return shared.TableDataResponse{}, err
	}

	s.mu.Lock()
	s.tableData = resp.Data
	s.pagination = resp.Pagination
	s.mu.Unlock()
	return resp, nil
}

// Export downloads the table in the given format and saves it into dir. The
// server's filename is used if it sent one, otherwise <name>_export.<format>.
func (s *Store) Export(name string, format shared.ExportFormat, dir string) (string, error) {
	s.begin()
	defer s.done()

	if !format.Valid() {
		s.fail(ErrInvalidFormat, ErrInvalidFormat.Error())
		return "", ErrInvalidFormat
	}

	download, err := s.api.ExportTable(name, format)
	if err != nil {
		s.fail(err, "Failed to export data")
		return "", err
	}

	fallback := fmt.Sprintf("%s_export.%s", name, format)
	filename := utils.FilenameFromDisposition(download.Disposition, fallback)

	path, err := utils.SaveToDir(dir, filename, download.Contents)
	if err != nil {
		s.fail(err, "Failed to save export")
		return "", err
	}

	return path, nil
}

func (s *Store) Tables() []shared.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.Table(nil), s.tables...)
}

func (s *Store) CurrentTable() (shared.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentTable == nil {
		return shared.Table{}, false
	}

	return *s.currentTable, true
}

func (s *Store) TableData() []shared.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.Row(nil), s.tableData...)
}

func (s *Store) Pagination() shared.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *Store) TotalTables() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

func (s *Store) HasError() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.err) > 0
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
