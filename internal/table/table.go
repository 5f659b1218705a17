// Package table turns a column set and a collection into rows of display
// cells. It knows nothing about the entities it renders.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Default placeholder texts
const (
	LoadingText      = "Loading..."
	DefaultEmptyText = "No data available"
)

// Cell is one rendered value with an optional style class
type Cell struct {
	Text  string
	Style string
}

// Column describes one column. Render is preferred; when nil the value is
// looked up by Key among the JSON field names of the item.
type Column[T any] struct {
	Key    string
	Header string
	Render func(item T) Cell
}

// Options controls the placeholders
type Options struct {
	Loading      bool
	EmptyMessage string
}

// View is the rendered table. Exactly one of Rows or Placeholder is set.
type View struct {
	Headers     []string
	Keys        []string
	Rows        [][]Cell
	Placeholder string
	Empty       bool
	Loading     bool
}

// Build renders items in input order
func Build[T any](columns []Column[T], items []T, opts Options) View {
	v := View{
		Headers: make([]string, len(columns)),
		Keys:    make([]string, len(columns)),
	}
	for i, col := range columns {
		v.Headers[i] = col.Header
		v.Keys[i] = col.Key
	}

	switch {
	case opts.Loading:
		v.Loading = true
		v.Placeholder = LoadingText
		return v
	case len(items) == 0:
		v.Empty = true
		v.Placeholder = opts.EmptyMessage
		if v.Placeholder == "" {
			v.Placeholder = DefaultEmptyText
		}
		return v
	}

	v.Rows = make([][]Cell, 0, len(items))
	for _, item := range items {
		row := make([]Cell, len(columns))
		for i, col := range columns {
			if col.Render != nil {
				row[i] = col.Render(item)
				continue
			}
			row[i] = Cell{Text: Lookup(item, col.Key)}
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// Lookup formats the field of item whose JSON name is key. Missing fields
// and nil pointers render empty.
func Lookup(item interface{}, key string) string {
	val := reflect.ValueOf(item)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" {
				name = f.Name
			}
			if name == key {
				return format(val.Field(i))
			}
		}
	case reflect.Map:
		if val.Type().Key().Kind() == reflect.String {
			if v := val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key())); v.IsValid() {
				return format(v)
			}
		}
	}
	return ""
}

func format(v reflect.Value) string {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map:
		raw, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(raw)
	}
	return fmt.Sprint(v.Interface())
}

// WriteText writes the view as aligned plain text. A placeholder is printed
// once under the headers.
func (v View) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(v.Headers, "\t")); err != nil {
		return err
	}

	if v.Placeholder != "" {
		if _, err := fmt.Fprintln(tw, v.Placeholder); err != nil {
			return err
		}
		return tw.Flush()
	}

	for _, row := range v.Rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.Text
		}
		if _, err := fmt.Fprintln(tw, strings.Join(texts, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
