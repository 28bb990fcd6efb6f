package export

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/weavebio/xmlgraph/internal/graph"
)

var bareIdentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// GenerateCypher renders a subgraph as a runnable CREATE script: one
// CREATE per node, then one per relationship, referencing the node
// variables. Property keys are emitted in sorted order so output is
// stable for a given subgraph.
func GenerateCypher(sg *graph.Subgraph) string {
	var sb strings.Builder
	for i, n := range sg.Nodes {
		sb.WriteString(fmt.Sprintf("CREATE (n%d:%s%s)\n", i, ident(n.Label), propsLiteral(n.Properties)))
	}
	for _, r := range sg.Relationships {
		sb.WriteString(fmt.Sprintf("CREATE (n%d)-[:%s]->(n%d)\n", r.Source, ident(r.Label), r.Target))
	}
	return sb.String()
}

// ident backticks labels that are not plain identifiers.
func ident(s string) string {
	if bareIdentRegex.MatchString(s) {
		return s
	}
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func propsLiteral(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", ident(k), valueLiteral(props[k])))
	}
	return " {" + strings.Join(parts, ", ") + "}"
}

func valueLiteral(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		// The date coercer produces midnight UTC instants; render those
		// as plain dates, everything else as a full timestamp.
		if h, m, s := v.Clock(); h == 0 && m == 0 && s == 0 && v.Nanosecond() == 0 {
			return fmt.Sprintf("date(%q)", v.Format(time.DateOnly))
		}
		return fmt.Sprintf("timestamp(%q)", v.Format(time.RFC3339))
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
