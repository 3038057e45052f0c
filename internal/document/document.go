package document

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/tree"
)

// Load reads and parses the tree document at path.
func Load(path string) (tree.Serialized, error) {
	format, err := tree.FormatFromPath(path)
	if err != nil {
		return tree.Serialized{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tree.Serialized{}, fmt.Errorf("read document: %w", err)
	}
	s, err := tree.Parse(data, format)
	if err != nil {
		return tree.Serialized{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes the current tree of d to path in the format implied by its
// extension.
func Save(d *designer.Designer, path string) error {
	root := d.GetCurrentTree()
	if root == nil {
		return fmt.Errorf("save document: no current workspace")
	}
	format, err := tree.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := tree.Marshal(root.Serialize(), format)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Reload loads path into the designer's current workspace and publishes
// document.reloaded. A document that fails to load leaves the tree as it
// was.
func Reload(d *designer.Designer, path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	if err := d.SetCurrentTree(s); err != nil {
		return err
	}

	payload := events.DocumentReloadedPayload{Path: path, NodeCount: s.Count()}
	if err := event.Publish(context.Background(), d.Bus(), events.DocumentReloaded, payload, "document"); err != nil {
		d.Logger().Debug("document event not delivered", zap.Error(err))
	}
	d.Logger().Info("document loaded",
		zap.String("path", path),
		zap.Int("nodes", payload.NodeCount),
	)
	return nil
}
