package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
)

// QueryParams narrows a query.
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword, for example
	// "CircuitID = ?".
	Where string

	// Args holds the arguments for the placeholders in Where.
	Args []any

	// OrderBy holds the sort order without the "ORDER BY" keywords.
	OrderBy string

	// Limit is the maximum number of rows to return. Zero means no limit.
	Limit int

	// Offset is the number of rows to skip.
	Offset int
}

func (p QueryParams) whereClause() string {
	if p.Where == "" {
		return ""
	}

	return " WHERE " + p.Where
}

// pageClause returns the ORDER BY, LIMIT and OFFSET part of a query. SQLite
// only accepts OFFSET after a LIMIT, and a negative limit means no limit.
func (p QueryParams) pageClause() string {
	clause := ""

	if p.OrderBy != "" {
		clause += " ORDER BY " + p.OrderBy
	}

	if p.Limit > 0 || p.Offset > 0 {
		limit := p.Limit
		if limit <= 0 {
			limit = -1
		}

		clause += " LIMIT " + strconv.Itoa(limit)
	}

	if p.Offset > 0 {
		clause += " OFFSET " + strconv.Itoa(p.Offset)
	}

	return clause
}

// DataReader reads tables written by a DataRecorder back into structs.
type DataReader interface {
	// MapTable associates a table with the struct type of its rows. A table
	// must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the names of the mapped tables.
	ListTables() []string

	// Query returns pointers to the matching rows and the number of rows
	// that match without Limit and Offset.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

// QueryAll maps the table to T and returns every row that params selects.
func QueryAll[T any](
	ctx context.Context,
	r DataReader,
	tableName string,
	params QueryParams,
) ([]T, error) {
	var sample T
	r.MapTable(tableName, sample)

	entries, _, err := r.Query(ctx, tableName, params)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, *e.(*T))
	}

	return rows, nil
}

type sqliteReader struct {
	db       *sql.DB
	rowTypes map[string]reflect.Type
}

// NewReader opens a database file written by a recorder. Unlike the sqlite
// driver, it does not create a missing file.
func NewReader(filename string) (DataReader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a reader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:       db,
		rowTypes: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.rowTypes[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.rowTypes))
	for table := range r.rowTypes {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	rowType, ok := r.rowTypes[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	where := params.whereClause()

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+where, params.Args...).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+where+params.pageClause(), params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := readEntries(rows, rowType)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func readEntries(rows *sql.Rows, rowType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var entries []any

	for rows.Next() {
		entry := reflect.New(rowType)

		if err := rows.Scan(scanTargets(entry.Elem(), columns)...); err != nil {
			return nil, err
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}

// scanTargets points every column at the struct field of the same name.
// Columns without a field are read and dropped.
func scanTargets(entry reflect.Value, columns []string) []any {
	targets := make([]any, len(columns))

	for i, col := range columns {
		field := entry.FieldByName(col)
		if field.IsValid() && field.CanSet() {
			targets[i] = field.Addr().Interface()
		} else {
			targets[i] = new(any)
		}
	}

	return targets
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
