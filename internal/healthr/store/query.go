package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
)

// RowSet is a query result: named columns and rows in the order the query
// returned them.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

func (r *RowSet) Len() int { return len(r.Rows) }

// Value returns the cell at row i in the named column.
func (r *RowSet) Value(i int, column string) (any, bool) {
	if i < 0 || i >= len(r.Rows) {
		return nil, false
	}
	for c, name := range r.Columns {
		if name == column {
			return r.Rows[i][c], true
		}
	}
	return nil, false
}

// Maps returns each row keyed by column name.
func (r *RowSet) Maps() []map[string]any {
	out := make([]map[string]any, len(r.Rows))
	for i, row := range r.Rows {
		m := make(map[string]any, len(r.Columns))
		for c, name := range r.Columns {
			m[name] = row[c]
		}
		out[i] = m
	}
	return out
}

// ExecuteQuery runs a single read-only statement with bound params. Values
// are never interpolated into the SQL text. The statement runs inside a
// read-only transaction that is always rolled back; on sqlite the
// connection is also switched to query_only for the duration. A missing
// table yields ErrSchema; an empty result is a RowSet with no rows.
func (s *Store) ExecuteQuery(ctx context.Context, query string, params ...any) (*RowSet, error) {
	if !isReadOnly(query) {
		return nil, fmt.Errorf("%w: %.40q", ErrNotReadOnly, query)
	}
	s.log.Debugw("execute query", "sql", query, "params", len(params))

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, storageErr("conn", err)
	}
	defer conn.Close()

	if s.dialect == SQLite {
		if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			return nil, storageErr("query_only", err)
		}
		defer s.releaseQueryOnly(conn)
	}

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, storageErr("begin", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, classify("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, storageErr("columns", err)
	}

	rs := &RowSet{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, storageErr("scan", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("rows", err)
	}
	return rs, nil
}

// releaseQueryOnly turns query_only off before conn goes back to the pool.
// A connection that cannot be reset is discarded.
func (s *Store) releaseQueryOnly(conn *sql.Conn) {
	if _, err := conn.ExecContext(context.Background(), "PRAGMA query_only = OFF"); err != nil {
		s.log.Warnw("reset query_only failed, discarding connection", "err", err.Error())
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	}
}

// writeKeywords never appear in a read-only statement outside quotes or
// comments. This also catches data-modifying CTEs.
var writeKeywords = map[string]bool{
	"INSERT": true, "UPDATE": true, "DELETE": true, "MERGE": true,
	"UPSERT": true, "DROP": true, "ALTER": true, "CREATE": true,
	"TRUNCATE": true, "ATTACH": true, "DETACH": true, "PRAGMA": true,
	"VACUUM": true, "REINDEX": true, "GRANT": true, "REVOKE": true,
}

// isReadOnly accepts one SELECT or WITH statement, optionally followed by
// semicolons. Anything after a top-level semicolon is rejected.
func isReadOnly(query string) bool {
	toks := sqlTokens(query)
	if len(toks) == 0 {
		return false
	}
	if toks[0] != "SELECT" && toks[0] != "WITH" {
		return false
	}
	for i, t := range toks {
		if t == ";" {
			for _, rest := range toks[i+1:] {
				if rest != ";" {
					return false
				}
			}
			return true
		}
		if writeKeywords[t] {
			return false
		}
	}
	return true
}

// sqlTokens returns the upper-cased words of query in order, with ";" for
// statement separators. Quoted strings, quoted identifiers and comments are
// skipped.
func sqlTokens(query string) []string {
	var toks []string
	for i := 0; i < len(query); {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`' || c == '[':
			closing := c
			if c == '[' {
				closing = ']'
			}
			j := strings.IndexByte(query[i+1:], closing)
			if j < 0 {
				return toks
			}
			i += j + 2
		case c == '-' && strings.HasPrefix(query[i:], "--"):
			j := strings.IndexByte(query[i:], '\n')
			if j < 0 {
				return toks
			}
			i += j + 1
		case c == '/' && strings.HasPrefix(query[i:], "/*"):
			j := strings.Index(query[i+2:], "*/")
			if j < 0 {
				return toks
			}
			i += j + 4
		case c == ';':
			toks = append(toks, ";")
			i++
		case isWordByte(c):
			j := i
			for j < len(query) && isWordByte(query[j]) {
				j++
			}
			toks = append(toks, strings.ToUpper(query[i:j]))
			i = j
		default:
			i++
		}
	}
	return toks
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
