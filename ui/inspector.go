package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	ICON_EXPANDED  = "▾"
	ICON_COLLAPSED = "▸"
)

// Inspector renders a decoded JSON value as a collapsible tree. Nodes above
// ExpandLevel start open; Toggle flips a single node by path.
type Inspector struct {
	Name        string
	Data        any
	ExpandLevel int

	toggled map[string]bool
}

func NewInspector(name string, data any, expandLevel int) *Inspector {
	return &Inspector{
		Name:        name,
		Data:        data,
		ExpandLevel: expandLevel,
		toggled:     make(map[string]bool),
	}
}

func (in *Inspector) Toggle(path string) {
	in.toggled[path] = !in.toggled[path]
}

func (in *Inspector) IsExpanded(path string, depth int) bool {
	return (depth < in.ExpandLevel) != in.toggled[path]
}

func (in *Inspector) Template() string {
	var sb strings.Builder
	in.node(&sb, in.Name, in.Name, in.Data, 0)
	return sb.String()
}

func (in *Inspector) node(sb *strings.Builder, path, label string, v any, depth int) {
	indent := strings.Repeat("  ", depth)

	keys, children := childrenOf(v)
	if children == nil {
		fmt.Fprintf(sb, "%s  %s: %s\n", indent, Escape(label), Escape(scalarText(v)))
		return
	}

	open := in.IsExpanded(path, depth)

	icon := ICON_COLLAPSED
	if open {
		icon = ICON_EXPANDED
	}

	fmt.Fprintf(sb, "%s<l text:%s action:\"toggle %s\" tip:\"expand/collapse\"> %s: <dim>%s</dim>\n",
		indent, icon, path, Escape(label), summary(v))

	if !open {
		return
	}

	for i, k := range keys {
		in.node(sb, path+"."+strconv.Itoa(i), k, children[i], depth+1)
	}
}

// childrenOf returns the sorted keys and values of an object or array,
// and nil for scalars.
func childrenOf(v any) ([]string, []any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = t[k]
		}
		return keys, values
	case []any:
		keys := make([]string, len(t))
		for i := range t {
			keys[i] = strconv.Itoa(i)
		}
		return keys, append([]any{}, t...)
	}
	return nil, nil
}

func summary(v any) string {
	switch t := v.(type) {
	case map[string]any:
		return "{" + strconv.Itoa(len(t)) + "}"
	case []any:
		return "[" + strconv.Itoa(len(t)) + "]"
	}
	return ""
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
