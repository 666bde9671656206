package cli

import (
	"fmt"
	"strings"
)

// CommandHelp describes one shell command.
type CommandHelp struct {
	Command   string
	ShortDesc string
	Syntax    string
	Arguments []string
	Examples  []string
}

var commandHelps = []CommandHelp{
	{
		Command:   "load",
		ShortDesc: "Load a flat node list and build the forest",
		Syntax:    "load [path]",
		Arguments: []string{"[path]: JSON, XML or SQLite file; defaults to the configured source"},
		Examples:  []string{"load nodes.json", "load outline.db"},
	},
	{
		Command:   "show",
		ShortDesc: "Show the visible rows, all rows or a single node",
		Syntax:    "show [all|<id>]",
		Examples:  []string{"show", "show all", "show 3"},
	},
	{
		Command:   "children",
		ShortDesc: "List every child list of the forest",
		Syntax:    "children",
	},
	{
		Command:   "select",
		ShortDesc: "Select or deselect a node and its whole subtree",
		Syntax:    "select <id> [on|off]",
		Examples:  []string{"select 2", "select 2 off"},
	},
	{
		Command:   "expand",
		ShortDesc: "Expand a node",
		Syntax:    "expand <id>",
	},
	{
		Command:   "collapse",
		ShortDesc: "Collapse a node",
		Syntax:    "collapse <id>",
	},
	{
		Command:   "set",
		ShortDesc: "Set a state prop on a node",
		Syntax:    "set <id> <prop> <value>",
		Examples:  []string{"set 4 color red"},
	},
	{
		Command:   "add",
		ShortDesc: "Add a child node; parent 0 adds a root",
		Syntax:    "add <parent> <content> [<key>:<value>]...",
		Arguments: []string{
			"<parent>: id of the parent node, 0 for a new root",
			"<content>: content of the new node; quote it when it has spaces",
		},
		Examples: []string{`add 1 "New Node" priority:high`},
	},
	{
		Command:   "update",
		ShortDesc: "Change a node's content and attributes",
		Syntax:    "update <id> <content> [<key>:<value>]...",
		Arguments: []string{"<key>: with nothing after the colon removes the attribute"},
		Examples:  []string{`update 3 "Renamed" priority:`},
	},
	{
		Command:   "del",
		ShortDesc: "Delete a node and its subtree",
		Syntax:    "del <id>",
	},
	{
		Command:   "move",
		ShortDesc: "Re-parent a node; parent 0 moves it to the top level",
		Syntax:    "move <id> <parent>",
		Examples:  []string{"move 4 1"},
	},
	{
		Command:   "find",
		ShortDesc: "Find nodes by content or attribute, tolerating typos",
		Syntax:    "find <query>",
		Examples:  []string{"find important"},
	},
	{
		Command:   "undo",
		ShortDesc: "Undo the last change",
		Syntax:    "undo",
	},
	{
		Command:   "redo",
		ShortDesc: "Redo the last undone change",
		Syntax:    "redo",
	},
	{
		Command:   "history",
		ShortDesc: "List recorded revisions",
		Syntax:    "history",
	},
	{
		Command:   "digest",
		ShortDesc: "Print the digest of the current forest",
		Syntax:    "digest",
	},
	{
		Command:   "help",
		ShortDesc: "Show help",
		Syntax:    "help [command]",
	},
	{
		Command:   "exit",
		ShortDesc: "Leave the shell (also: quit)",
		Syntax:    "exit",
	},
}

func (c *CLI) handleHelp(args []string) error {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
		return nil
	case 1:
		return c.showCommandHelp(args[0])
	default:
		return fmt.Errorf("usage: help [command]")
	}
}

func (c *CLI) showGeneralHelp() {
	c.UI.Println("Available commands:")
	for _, cmd := range commandHelps {
		c.UI.Printf("  %-10s %s\n", cmd.Command, cmd.ShortDesc)
	}
	c.UI.Println("\nUse 'help <command>' for more information about a specific command.")
}

func (c *CLI) showCommandHelp(command string) error {
	if command == "quit" {
		command = "exit"
	}
	for _, cmd := range commandHelps {
		if cmd.Command != command {
			continue
		}
		c.UI.Printf("Syntax: %s\n", cmd.Syntax)
		c.UI.Printf("Description: %s\n", cmd.ShortDesc)
		for _, arg := range cmd.Arguments {
			c.UI.Printf("- %s\n", arg)
		}
		if len(cmd.Examples) > 0 {
			c.UI.Printf("Example: %s\n", strings.Join(cmd.Examples, "; "))
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", command)
}
