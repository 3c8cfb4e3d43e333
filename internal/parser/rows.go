package parser

import "strings"

const (
	// headerLabel is the literal first-cell text of the table header row.
	headerLabel = "Период выплаты"
	// totalToken marks the running-total row at the bottom of the table.
	totalToken = "ИТОГО"
)

type rowKind int

const (
	rowSkip rowKind = iota
	rowOrdinary
	rowOrdinaryPreferred
)

// tableState carries classification state across the rows of one table.
// Once any row shows a third column the table is treated as carrying a
// preferred-share column for the rest of processing.
type tableState struct {
	hasPreferred bool
}

// rowData is one classified table row with its raw cell texts.
type rowData struct {
	kind      rowKind
	period    string
	ordinary  string
	preferred string
}

// classifyRow decides whether a row carries dividend data and which
// share classes it covers. Header and total rows are skipped by their
// literal labels.
func classifyRow(cells []string, state *tableState) rowData {
	if len(cells) < 2 {
		return rowData{kind: rowSkip}
	}

	period := strings.TrimSpace(cells[0])
	if period == headerLabel || strings.Contains(period, totalToken) {
		return rowData{kind: rowSkip}
	}

	if len(cells) >= 3 {
		state.hasPreferred = true
	}

	row := rowData{
		kind:     rowOrdinary,
		period:   period,
		ordinary: strings.TrimSpace(cells[1]),
	}
	if state.hasPreferred && len(cells) >= 3 {
		row.kind = rowOrdinaryPreferred
		row.preferred = strings.TrimSpace(cells[2])
	}
	return row
}
