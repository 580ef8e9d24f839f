package querybuilder

import (
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/your-username/game-event-analytics/internal/models"
)

const (
	dayFormat      = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

// timeCondition turns the selected periods into a single parenthesized
// predicate: one range clause per period, OR-joined. The day bound narrows
// the partition scan, the timestamp bound applies the exact window. Values
// are bound through named parameters; only the placeholder names appear in
// the query text, and their numbering is positional so equal period lists
// always yield identical text.
func timeCondition(periods []models.TimePeriod) (string, []any, error) {
	if len(periods) == 0 {
		return "", nil, &models.ValidationError{Field: "time_periods", Message: "add at least one time period"}
	}

	clauses := make([]string, 0, len(periods))
	params := make([]any, 0, len(periods)*4)

	for i, p := range periods {
		clauses = append(clauses, fmt.Sprintf(
			"(created_day BETWEEN {p%d_start_day:Date} AND {p%d_end_day:Date}"+
				" AND created_date >= {p%d_start:DateTime}"+
				" AND created_date <= {p%d_end:DateTime})",
			i, i, i, i))
		params = append(params,
			clickhouse.Named(fmt.Sprintf("p%d_start_day", i), p.Start.Format(dayFormat)),
			clickhouse.Named(fmt.Sprintf("p%d_end_day", i), p.End.Format(dayFormat)),
			clickhouse.Named(fmt.Sprintf("p%d_start", i), p.Start.Format(dateTimeFormat)),
			clickhouse.Named(fmt.Sprintf("p%d_end", i), p.End.Format(dateTimeFormat)),
		)
	}

	return "(" + strings.Join(clauses, " OR ") + ")", params, nil
}
