package sheetsync

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// memSheet is an in-memory sheet that understands the A1 ranges the service produces.
type memSheet struct {
	rows   [][]string
	writes int
	getErr error
	putErr error
	ranges []string
}

func (m *memSheet) Get(_ context.Context, a1Range string) ([][]string, error) {
	m.ranges = append(m.ranges, a1Range)
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *memSheet) Append(_ context.Context, a1Range string, row []string) error {
	m.ranges = append(m.ranges, a1Range)
	if m.putErr != nil {
		return m.putErr
	}
	m.writes++
	m.rows = append(m.rows, append([]string(nil), row...))
	return nil
}

func (m *memSheet) Update(_ context.Context, a1Cell, value string) error {
	m.ranges = append(m.ranges, a1Cell)
	if m.putErr != nil {
		return m.putErr
	}
	ref := a1Cell[strings.LastIndex(a1Cell, "!")+1:]
	col := int(ref[0] - 'A')
	row, err := strconv.Atoi(ref[1:])
	if err != nil || row < 1 || row > len(m.rows) {
		return fmt.Errorf("bad cell %q", a1Cell)
	}
	for len(m.rows[row-1]) <= col {
		m.rows[row-1] = append(m.rows[row-1], "")
	}
	m.rows[row-1][col] = value
	m.writes++
	return nil
}

func header() []string {
	return []string{"Date", "Program", "First Name", "Last Name", "Email", "Phone", "Reason",
		"Heard About", "Convenient Time", "Additional Info", "Status", "Registration ID"}
}
