package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/larder/internal/scenario"
)

// writeReport prints a scenario report in the given format.
func writeReport(w io.Writer, format string, r *scenario.Report) error {
	if format == formatJSON {
		return writeJSON(w, r)
	}
	return writeText(w, r)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeText prints query and resource results in step order.
func writeText(w io.Writer, r *scenario.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario)

	qi, ri := 0, 0
	for qi < len(r.Queries) || ri < len(r.Resources) {
		if ri >= len(r.Resources) || (qi < len(r.Queries) && r.Queries[qi].Step < r.Resources[ri].Step) {
			writeQuery(&b, r.Queries[qi])
			qi++
			continue
		}
		res := r.Resources[ri]
		fmt.Fprintf(&b, "resource %s (step %d): %s\n", res.Name, res.Step, res.Value)
		ri++
	}

	fmt.Fprintf(&b, "entities: %d\n", r.Entities)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeQuery(b *strings.Builder, q scenario.QueryReport) {
	noun := "rows"
	if len(q.Rows) == 1 {
		noun = "row"
	}
	fmt.Fprintf(b, "query [%s] (step %d): %d %s\n", strings.Join(q.Components, ", "), q.Step, len(q.Rows), noun)
	for _, row := range q.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = q.Components[i] + "=" + v
		}
		fmt.Fprintf(b, "  %s\n", strings.Join(cells, " | "))
	}
}
