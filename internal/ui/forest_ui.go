package ui

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"nodeforest/pkg/models"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	indentOpen    = "│   "
	indentClosed  = "    "
)

type ForestUI struct {
	visualizer *Visualizer
}

func NewForestUI(w io.Writer, useColor bool) *ForestUI {
	return &ForestUI{
		visualizer: NewVisualizer(w, useColor),
	}
}

// RenderRows draws flattened rows as an indented tree. Rows must come in
// depth-first order as produced by the flattener.
func (fui *ForestUI) RenderRows(rows []models.Row) {
	if len(rows) == 0 {
		fui.visualizer.Println("Forest is empty.")
		return
	}

	lastAt := make(map[int]bool)
	for i, row := range rows {
		last := isLastSibling(rows, i)
		lastAt[row.Deepness] = last

		var prefix strings.Builder
		for level := 1; level < row.Deepness; level++ {
			if lastAt[level] {
				prefix.WriteString(indentClosed)
			} else {
				prefix.WriteString(indentOpen)
			}
		}
		if row.Deepness > 0 {
			if last {
				prefix.WriteString(connectorLast)
			} else {
				prefix.WriteString(connectorMid)
			}
		}

		fui.visualizer.PrintMultiColoredLine(prefix.String()+nodeLine(row.Node), fui.getColorMap())
	}
}

// NodeList prints one line per node without tree connectors.
func (fui *ForestUI) NodeList(nodes []*models.Node) {
	if len(nodes) == 0 {
		fui.visualizer.Println("No nodes.")
		return
	}
	for _, n := range nodes {
		fui.visualizer.PrintMultiColoredLine(nodeLine(n), fui.getColorMap())
	}
}

// NodeFind lists search hits with their ancestry.
func (fui *ForestUI) NodeFind(rows []models.Row) {
	if len(rows) == 0 {
		fui.visualizer.Println("No matches found.")
		return
	}

	fui.visualizer.Printf("Found %d matches:\n", len(rows))
	for _, row := range rows {
		path := ""
		if len(row.Parents) > 0 {
			ids := make([]string, len(row.Parents))
			for i, id := range row.Parents {
				ids[i] = fmt.Sprint(id)
			}
			path = "{{path}}" + strings.Join(ids, "/") + "/{{default}}"
		}
		fui.visualizer.PrintMultiColoredLine(path+nodeLine(row.Node), fui.getColorMap())
	}
}

// NodeInfo displays a single node with its state and attributes.
func (fui *ForestUI) NodeInfo(row models.Row) {
	n := row.Node
	fui.visualizer.Printf("Node ID: %d\n", n.ID)
	fui.visualizer.Printf("Parent ID: %d\n", n.ParentID)
	fui.visualizer.Printf("Content: %s\n", n.Content)
	fui.visualizer.Printf("Depth: %d\n", row.Deepness)
	fui.visualizer.Printf("Selected: %t, Expanded: %t\n", n.State.Selected, n.State.Expanded)
	for _, key := range slices.Sorted(maps.Keys(n.State.Props)) {
		fui.visualizer.Printf("  state %s: %v\n", key, n.State.Props[key])
	}
	for _, key := range slices.Sorted(maps.Keys(n.Extra)) {
		fui.visualizer.Printf("  %s: %s\n", key, n.Extra[key])
	}
}

func nodeLine(n *models.Node) string {
	marker := " "
	if n.HasChildren() {
		marker = "+"
		if n.State.Expanded {
			marker = "-"
		}
	}
	check := "[ ]"
	if n.State.Selected {
		check = "[x]"
	}

	line := fmt.Sprintf("{{marker}}%s {{check}}%s{{default}} %s {{id}}(%d){{default}}",
		marker, check, n.Content, n.ID)

	if len(n.Extra) > 0 {
		fields := make([]string, 0, len(n.Extra))
		for _, k := range slices.Sorted(maps.Keys(n.Extra)) {
			fields = append(fields, fmt.Sprintf("%s:%s", k, n.Extra[k]))
		}
		line += " {{extra}}" + strings.Join(fields, ", ") + "{{default}}"
	}
	return line
}

// isLastSibling reports whether no later row shares the parent of rows[i].
func isLastSibling(rows []models.Row, i int) bool {
	depth := rows[i].Deepness
	for _, r := range rows[i+1:] {
		if r.Deepness < depth {
			return true
		}
		if r.Deepness == depth {
			return false
		}
	}
	return true
}

func (fui *ForestUI) getColorMap() map[string]Color {
	return map[string]Color{
		"{{marker}}":  ColorYellow,
		"{{check}}":   ColorLightGreen,
		"{{id}}":      ColorOrange,
		"{{extra}}":   ColorLightPurple,
		"{{path}}":    ColorGray,
		"{{default}}": ColorDefault,
	}
}
