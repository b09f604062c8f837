// Package load opens scene files and builds their outlines.
package load

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/scene"
	"go.trai.ch/zerr"
)

// ErrUnknownFormat is returned for files that are neither YAML nor SVG.
var ErrUnknownFormat = zerr.New("unknown scene format")

// Scene reads a YAML (.yaml, .yml) or SVG (.svg) scene.
func Scene(name string) (*scene.Graph, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var g *scene.Graph
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		g, err = scene.LoadYAML(f)
	case ".svg":
		g, err = scene.FromSVG(f)
	default:
		return nil, zerr.With(ErrUnknownFormat, "file", name)
	}
	if err != nil {
		return nil, zerr.With(err, "file", name)
	}
	return g, nil
}

// Outlines adds one outline per group of g to c. A scene without
// groups gets a single outline around every node.
func Outlines(g *scene.Graph, c *bubbleset.Collection) error {
	groups := g.Groups()
	if len(groups) == 0 {
		nodes := g.NodeIDs()
		groups = []scene.Group{{Name: "all", Members: nodes, Edges: g.InducedEdges(nodes)}}
	}
	for _, gr := range groups {
		members, edges, avoid := gr.Selections()
		if _, err := c.AddOutline(members, edges, avoid, gr.Options); err != nil {
			return zerr.With(err, "group", gr.Name)
		}
	}
	return nil
}
