package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	shell "nodeforest/internal/cli"
	"nodeforest/internal/config"
	"nodeforest/internal/event"
	journal "nodeforest/internal/log"
	"nodeforest/internal/session"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a JSON config file",
	}
	sourceFlag = &cli.StringFlag{
		Name:  "source",
		Usage: "file to load the flat node list from",
	}
	kindFlag = &cli.StringFlag{
		Name:  "kind",
		Usage: "source kind: json, xml or sqlite",
	}
	tableFlag = &cli.StringFlag{
		Name:  "table",
		Usage: "table holding the nodes when the source is sqlite",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable ANSI colors",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "nodeforest"
	app.Usage = "Browse and edit a forest built from a flat, parent-referencing node list"
	app.ArgsUsage = "[script...]"
	app.Flags = []cli.Flag{configFlag, sourceFlag, kindFlag, tableFlag, noColorFlag}
	app.Action = mainAction

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("nodeforest exited with error")
	}
}

func mainAction(ctx *cli.Context) error {
	cfg, err := config.ConfigLoad(ctx.String(configFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if ctx.IsSet(sourceFlag.Name) {
		cfg.Source.Path = ctx.String(sourceFlag.Name)
	}
	if ctx.IsSet(kindFlag.Name) {
		cfg.Source.Kind = ctx.String(kindFlag.Name)
	}
	if ctx.IsSet(tableFlag.Name) {
		cfg.Source.Table = ctx.String(tableFlag.Name)
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.UI.Color = false
	}

	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	logger, err := journal.NewLogger(cfg.Log.Folder, cfg.Log.CommandFile, cfg.Log.ErrorFile, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to open logs: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			log.WithError(err).Warn("failed to close logs")
		}
	}()

	events := event.NewEventManager()
	for _, typ := range []event.EventType{event.ForestLoaded, event.ForestChanged, event.RevisionRestored} {
		events.Subscribe(typ, logEvent)
	}
	defer events.Wait()

	sess := session.NewSession(cfg.History.Limit)
	sess.SetEvents(events)
	c := shell.NewCLI(sess, cfg.Source, logger, os.Stdout, cfg.UI.Color)

	runCtx := ctx.Context
	if _, err := os.Stat(cfg.Source.Path); err == nil {
		if err := c.ExecuteLine(runCtx, "load"); err != nil {
			c.UI.Warning(fmt.Sprintf("Could not load %s: %v", cfg.Source.Path, err))
		}
	} else {
		log.WithField("path", cfg.Source.Path).Debug("source not found, starting empty")
	}

	for _, script := range ctx.Args().Slice() {
		if err := c.ExecuteScript(runCtx, script); err != nil {
			if errors.Is(err, shell.ErrExit) {
				return nil
			}
			log.WithError(err).WithField("script", script).Error("script failed")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt,
		HistoryFile:     cfg.History.File,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()
	c.SetReadline(rl)

	c.UI.Info("Welcome to nodeforest! Use 'help' for the list of commands.")
	return loop(runCtx, c)
}

func loop(ctx context.Context, c *shell.CLI) error {
	for {
		err := c.Run(ctx)
		switch {
		case err == nil:
		case errors.Is(err, readline.ErrInterrupt):
			c.UI.Info("Use 'exit' or 'quit' to exit the program.")
		case errors.Is(err, io.EOF), errors.Is(err, shell.ErrExit):
			c.UI.Println("Goodbye!")
			return nil
		default:
			c.UI.Error(err.Error())
		}
	}
}

func logEvent(e event.Event) {
	log.WithFields(log.Fields{
		"op":       e.Op,
		"revision": e.Revision,
		"digest":   e.Digest,
	}).Debug(e.Type.String())
}
