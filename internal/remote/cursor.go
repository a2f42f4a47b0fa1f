package remote

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
)

// rowsCursor adapts *sql.Rows to the positional Cursor contract. Each row is
// scanned into untyped values; an optional transform rewrites the row before
// the caller sees it (used to map reported type names to numeric codes).
type rowsCursor struct {
	rows      *sql.Rows
	cols      int
	vals      []any
	err       error
	transform func(vals []any) error
}

func newRowsCursor(rows *sql.Rows, transform func(vals []any) error) (*rowsCursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, &ClientError{Op: "read result columns", Err: err}
	}
	return &rowsCursor{rows: rows, cols: len(cols), transform: transform}, nil
}

func (c *rowsCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.err = &ClientError{Op: "advance cursor", Err: err}
		}
		return false
	}
	c.vals = make([]any, c.cols)
	ptrs := make([]any, c.cols)
	for i := range ptrs {
		ptrs[i] = &c.vals[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		c.err = &ClientError{Op: "scan row", Err: err}
		return false
	}
	if c.transform != nil {
		if err := c.transform(c.vals); err != nil {
			c.err = err
			return false
		}
	}
	return true
}

func (c *rowsCursor) String(col int) (string, error) {
	v, err := c.value(col)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return fmt.Sprintf("%v", t), nil
	}
}

func (c *rowsCursor) Int(col int) (int, error) {
	v, err := c.value(col)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, &ProtocolError{Detail: fmt.Sprintf("column %d holds non-integral value %v", col, t)}
		}
		return int(t), nil
	case []byte:
		return parseInt(string(t))
	case string:
		return parseInt(t)
	default:
		return 0, &ProtocolError{Detail: fmt.Sprintf("column %d has non-numeric type %T", col, v)}
	}
}

func (c *rowsCursor) Err() error { return c.err }

func (c *rowsCursor) Close() error {
	return c.rows.Close()
}

func (c *rowsCursor) value(col int) (any, error) {
	if c.err != nil {
		return nil, c.err
	}
	if col < 0 || col >= len(c.vals) {
		return nil, &ProtocolError{Detail: fmt.Sprintf("column %d out of range (row has %d columns)", col, len(c.vals))}
	}
	return c.vals[col], nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ProtocolError{Detail: fmt.Sprintf("cannot parse %q as integer", s)}
	}
	return n, nil
}
