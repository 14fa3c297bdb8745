package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// WriteTable writes v as an aligned text table for humans. A {"data": x}
// envelope is unwrapped. A list of objects becomes one row per object with
// nested objects flattened to dotted columns ("start.date"); a single object
// becomes key/value rows.
func WriteTable(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	if env, ok := x.(map[string]any); ok && len(env) == 1 {
		if d, ok := env["data"]; ok {
			x = d
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	switch t := x.(type) {
	case []any:
		rows := make([]map[string]string, 0, len(t))
		cols := map[string]bool{}
		for _, it := range t {
			row := map[string]string{}
			flatten("", it, row)
			for k := range row {
				cols[k] = true
			}
			rows = append(rows, row)
		}
		header := sortedKeys(cols)
		if len(header) == 0 {
			_, err := fmt.Fprintln(w, "(none)")
			return err
		}
		tbl.AddRow(cells(header, bold.Sprint)...)
		for _, row := range rows {
			vals := make([]any, len(header))
			for i, k := range header {
				vals[i] = row[k]
			}
			tbl.AddRow(vals...)
		}
	default:
		row := map[string]string{}
		flatten("", t, row)
		for _, k := range sortedKeys(row) {
			tbl.AddRow(bold.Sprint(k), row[k])
		}
	}

	_, err = fmt.Fprintln(w, tbl.String())
	return err
}

func generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	return x, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			if prefix != "" {
				k = prefix + "." + k
			}
			flatten(k, vv, out)
		}
	case nil:
		out[valueKey(prefix)] = ""
	case string:
		out[valueKey(prefix)] = strings.ReplaceAll(t, "\n", " ")
	case []any:
		b, _ := json.Marshal(t)
		out[valueKey(prefix)] = string(b)
	default:
		out[valueKey(prefix)] = fmt.Sprint(t)
	}
}

func valueKey(k string) string {
	if k == "" {
		return "value"
	}
	return k
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cells(vals []string, f func(a ...any) string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = f(v)
	}
	return out
}
