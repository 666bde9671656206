package storage

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"

	"nodeforest/internal/config"
	"nodeforest/pkg/models"
)

// FileSource reads a flat record list from a JSON or XML file.
type FileSource struct {
	Path   string
	Format string
}

type jsonDocument struct {
	Nodes []*models.Node `json:"nodes"`
}

type xmlDocument struct {
	XMLName xml.Name    `xml:"nodes"`
	Nodes   []xmlRecord `xml:"node"`
}

type xmlRecord struct {
	ID        int            `xml:"id,attr"`
	ParentID  int            `xml:"parent,attr"`
	Selected  bool           `xml:"selected,attr"`
	Expanded  bool           `xml:"expanded,attr"`
	Content   string         `xml:"content"`
	Attribute []xmlAttribute `xml:"attribute"`
}

type xmlAttribute struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func NewFileSource(path, format string) *FileSource {
	return &FileSource{Path: path, Format: format}
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("%s file %s", s.Format, s.Path)
}

// Load reads and decodes the whole file.
func (s *FileSource) Load(ctx context.Context) ([]*models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var nodes []*models.Node
	switch s.Format {
	case config.SourceJSON:
		var doc jsonDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data: %w", err)
		}
		nodes = doc.Nodes
	case config.SourceXML:
		var doc xmlDocument
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data: %w", err)
		}
		nodes = make([]*models.Node, 0, len(doc.Nodes))
		for _, r := range doc.Nodes {
			nodes = append(nodes, r.node())
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", s.Format)
	}

	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("record %d is empty", i)
		}
	}
	return normalise(nodes), nil
}

func (r xmlRecord) node() *models.Node {
	n := models.NewNode(r.ID, r.ParentID, r.Content)
	n.State.Selected = r.Selected
	n.State.Expanded = r.Expanded
	for _, a := range r.Attribute {
		n.Extra[a.Key] = a.Value
	}
	return n
}
