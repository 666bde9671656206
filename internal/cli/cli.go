// Package cli provides the interactive shell and the script runner.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"nodeforest/internal/config"
	"nodeforest/internal/log"
	"nodeforest/internal/session"
	"nodeforest/internal/ui"
)

// ErrExit is returned when the user asks to leave the shell.
var ErrExit = errors.New("exit requested")

type CLI struct {
	Session  *session.Session
	UI       *ui.UI
	ForestUI *ui.ForestUI
	Logger   *log.Logger
	RL       *readline.Instance
	Prompt   string
	source   config.SourceConfig
}

// NewCLI wires a shell around sess. source is used by 'load' to decide how a
// path is read.
func NewCLI(sess *session.Session, source config.SourceConfig, logger *log.Logger, w io.Writer, useColor bool) *CLI {
	c := &CLI{
		Session:  sess,
		UI:       ui.NewUI(w, useColor),
		ForestUI: ui.NewForestUI(w, useColor),
		Logger:   logger,
		source:   source,
	}
	c.UpdatePrompt()
	return c
}

// SetReadline attaches the line editor used by Run.
func (c *CLI) SetReadline(rl *readline.Instance) {
	c.RL = rl
	c.UpdatePrompt()
}

func (c *CLI) UpdatePrompt() {
	c.Prompt = c.UI.GetPromptString(c.Session.Source())
	if c.RL != nil {
		c.RL.SetPrompt(c.Prompt)
	}
}

// Run reads and executes one line. readline.ErrInterrupt, io.EOF and ErrExit
// are passed through to the caller.
func (c *CLI) Run(ctx context.Context) error {
	if c.RL == nil {
		return fmt.Errorf("no line editor attached")
	}
	line, err := c.RL.Readline()
	if err != nil {
		return err
	}
	return c.ExecuteLine(ctx, line)
}

// ExecuteLine parses and executes a single command line and journals it.
func (c *CLI) ExecuteLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if len(line) == 0 || strings.HasPrefix(line, "#") {
		return nil
	}

	if c.Logger != nil {
		c.Logger.LogCommand(line)
	}

	err := c.ExecuteCommand(ctx, c.ParseArgs(line))
	if err != nil && !errors.Is(err, ErrExit) && c.Logger != nil {
		c.Logger.LogError(line, err)
	}
	c.UpdatePrompt()
	return err
}

// ParseArgs splits input on spaces. Double quotes group words into one
// argument and are removed.
func (c *CLI) ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				currentArg.WriteRune(char)
				continue
			}
			if currentArg.Len() > 0 || quoted {
				args = append(args, currentArg.String())
				currentArg.Reset()
				quoted = false
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}

// ExecuteCommand routes args[0] to its handler.
func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch args[0] {
	case "load":
		return c.handleLoad(ctx, args[1:])
	case "show":
		return c.handleShow(args[1:])
	case "children":
		return c.handleChildren(args[1:])
	case "select":
		return c.handleSelect(args[1:])
	case "expand":
		return c.handleExpand(args[1:], true)
	case "collapse":
		return c.handleExpand(args[1:], false)
	case "set":
		return c.handleSet(args[1:])
	case "add":
		return c.handleAdd(args[1:])
	case "update":
		return c.handleUpdate(args[1:])
	case "del":
		return c.handleDelete(args[1:])
	case "move":
		return c.handleMove(args[1:])
	case "find":
		return c.handleFind(args[1:])
	case "undo":
		return c.handleUndo(args[1:])
	case "redo":
		return c.handleRedo(args[1:])
	case "history":
		return c.handleHistory(args[1:])
	case "digest":
		return c.handleDigest(args[1:])
	case "help":
		return c.handleHelp(args[1:])
	case "exit", "quit":
		c.UI.Println("Exiting...")
		return ErrExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// ExecuteScript runs every line of a script file. Blank lines and lines
// starting with '#' are skipped. Execution stops at the first failing line
// or at 'exit'.
func (c *CLI) ExecuteScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(strings.TrimSpace(line), "#") {
			c.UI.Println(c.Prompt + strings.TrimSpace(line))
		}
		if err := c.ExecuteLine(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return err
			}
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}
