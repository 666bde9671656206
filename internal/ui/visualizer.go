package ui

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer prints lines carrying inline {{color}} tokens.
type Visualizer struct {
	writer   io.Writer
	useColor bool
}

func NewVisualizer(w io.Writer, useColor bool) *Visualizer {
	return &Visualizer{
		writer:   w,
		useColor: useColor,
	}
}

func (v *Visualizer) Print(message string) {
	fmt.Fprint(v.writer, message)
}

func (v *Visualizer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(v.writer, format, args...)
}

func (v *Visualizer) Println(message string) {
	fmt.Fprintln(v.writer, message)
}

func (v *Visualizer) PrintColored(message string, color Color) {
	if v.useColor && color != ColorDefault {
		fmt.Fprintf(v.writer, "%s%s%s", color, message, ColorDefault)
	} else {
		fmt.Fprint(v.writer, message)
	}
}

// PrintMultiColoredLine prints line, switching color at every token found in
// colorMap. Unknown tokens fall back to the default color. Text before the
// first token is printed uncolored.
func (v *Visualizer) PrintMultiColoredLine(line string, colorMap map[string]Color) {
	for len(line) > 0 {
		start := strings.Index(line, "{{")
		if start == -1 {
			v.Print(line)
			break
		}
		end := strings.Index(line[start:], "}}")
		if end == -1 {
			v.Print(line)
			break
		}
		end += start

		if start > 0 {
			v.Print(line[:start])
		}

		color, exists := colorMap[line[start:end+2]]
		if !exists {
			color = ColorDefault
		}

		rest := line[end+2:]
		next := strings.Index(rest, "{{")
		if next == -1 {
			v.PrintColored(rest, color)
			break
		}
		v.PrintColored(rest[:next], color)
		line = rest[next:]
	}
	v.Println("")
}
