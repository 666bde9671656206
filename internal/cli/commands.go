package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"nodeforest/internal/config"
	"nodeforest/internal/session"
	"nodeforest/internal/storage"
	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

func (c *CLI) handleLoad(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: load [path]")
	}

	cfg := c.source
	if len(args) == 1 {
		cfg.Path = args[0]
		cfg.Kind = kindFromPath(args[0], cfg.Kind)
	}

	src, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	if closer, ok := src.(storage.Closer); ok {
		defer closer.Close()
	}

	if err := c.Session.Load(ctx, src); err != nil {
		return err
	}
	c.source = cfg

	count := len(tree.FlattenAll(c.Session.Nodes()))
	c.UI.Success(fmt.Sprintf("Loaded %d nodes from %s.", count, src.Name()))
	return nil
}

func (c *CLI) handleShow(args []string) error {
	switch {
	case len(args) == 0:
		c.ForestUI.RenderRows(c.Session.Rows(false))
	case len(args) == 1 && args[0] == "all":
		c.ForestUI.RenderRows(c.Session.Rows(true))
	case len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		row, ok := tree.Locate(c.Session.Nodes(), id)
		if !ok {
			return fmt.Errorf("node %d: %w", id, tree.ErrNodeNotFound)
		}
		c.ForestUI.NodeInfo(row)
	default:
		return fmt.Errorf("usage: show [all|<id>]")
	}
	return nil
}

func (c *CLI) handleChildren(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: children")
	}
	c.ForestUI.NodeList(c.Session.Children())
	return nil
}

func (c *CLI) handleSelect(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: select <id> [on|off]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	selected := true
	if len(args) == 2 {
		switch args[1] {
		case "on":
		case "off":
			selected = false
		default:
			return fmt.Errorf("usage: select <id> [on|off]")
		}
	}

	if err := c.Session.Select(id, selected); err != nil {
		return err
	}
	if selected {
		c.UI.Success(fmt.Sprintf("Node %d and its subtree selected.", id))
	} else {
		c.UI.Success(fmt.Sprintf("Node %d and its subtree deselected.", id))
	}
	return nil
}

func (c *CLI) handleExpand(args []string, expand bool) error {
	name := "collapse"
	if expand {
		name = "expand"
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <id>", name)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if expand {
		err = c.Session.Expand(id)
	} else {
		err = c.Session.Collapse(id)
	}
	if err != nil {
		return err
	}
	c.ForestUI.RenderRows(c.Session.Rows(false))
	return nil
}

func (c *CLI) handleSet(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set <id> <prop> <value>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := c.Session.SetProp(id, args[1], args[2]); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %d: %s set to %s.", id, args[1], args[2]))
	return nil
}

func (c *CLI) handleAdd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <parent> <content> [<key>:<value>]...")
	}
	parentID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid parent id: %s", args[0])
	}

	extra, err := parseExtra(args[2:])
	if err != nil {
		return err
	}

	id, err := c.Session.Add(parentID, args[1], extra)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %d added.", id))
	return nil
}

func (c *CLI) handleUpdate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: update <id> <content> [<key>:<value>]...")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	extra, err := parseExtra(args[2:])
	if err != nil {
		return err
	}

	if err := c.Session.Update(id, args[1], extra); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %d updated.", id))
	return nil
}

func (c *CLI) handleDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: del <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := c.Session.Delete(id); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %d and its subtree deleted.", id))
	return nil
}

func (c *CLI) handleMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <id> <parent>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	parentID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid parent id: %s", args[1])
	}

	if err := c.Session.Move(id, parentID); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %d moved.", id))
	return nil
}

func (c *CLI) handleFind(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: find <query>")
	}

	matches := c.Session.Find(strings.Join(args, " "))
	rows := make([]models.Row, len(matches))
	for i, m := range matches {
		rows[i] = m.Row
	}
	c.ForestUI.NodeFind(rows)
	return nil
}

func (c *CLI) handleUndo(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: undo")
	}
	rev, err := c.Session.Undo()
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Restored revision %s (%s).", shortID(rev), rev.Op))
	return nil
}

func (c *CLI) handleRedo(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: redo")
	}
	rev, err := c.Session.Redo()
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Re-applied revision %s (%s).", shortID(rev), rev.Op))
	return nil
}

func (c *CLI) handleHistory(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: history")
	}

	revs, current := c.Session.History()
	if len(revs) == 0 {
		c.UI.Info("No history.")
		return nil
	}
	for i, rev := range revs {
		marker := " "
		if i == current {
			marker = "*"
		}
		c.UI.Printf("%s %3d  %-8s %s  %s\n", marker, i, rev.Op, shortID(rev), rev.Digest[:12])
	}
	return nil
}

func (c *CLI) handleDigest(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: digest")
	}
	digest, err := c.Session.Digest()
	if err != nil {
		return err
	}
	c.UI.Println(digest)
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || models.IsEmptyRef(id) {
		return 0, fmt.Errorf("invalid node id: %s", arg)
	}
	return id, nil
}

// parseExtra reads <key>:<value> arguments. An empty value is kept so that
// update can remove the key.
func parseExtra(args []string) (map[string]string, error) {
	extra := make(map[string]string, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid extra field %q, expected <key>:<value>", arg)
		}
		extra[parts[0]] = parts[1]
	}
	return extra, nil
}

func kindFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.SourceJSON
	case ".xml":
		return config.SourceXML
	case ".db", ".sqlite", ".sqlite3":
		return config.SourceSQLite
	default:
		return fallback
	}
}

func shortID(rev session.Revision) string {
	return rev.ID.String()[:8]
}
