package scene

import (
	"github.com/paulhankin/bubblesets/bubbleset"
	"go.trai.ch/zerr"
)

// GroupSpec names the elements an outline is drawn for.
type GroupSpec struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
	Edges   []string `yaml:"edges"`
	Avoid   []string `yaml:"avoid"`
	// InducedEdges adds every edge joining two members.
	InducedEdges bool              `yaml:"induced_edges"`
	Options      bubbleset.Options `yaml:"options"`
}

// Group is a resolved GroupSpec.
type Group struct {
	Name    string
	Members []bubbleset.ElementID
	Edges   []bubbleset.ElementID
	Avoid   []bubbleset.ElementID
	Options bubbleset.Options
}

func ids(ss []string) []bubbleset.ElementID {
	out := make([]bubbleset.ElementID, len(ss))
	for i, s := range ss {
		out[i] = bubbleset.ElementID(s)
	}
	return out
}

// AddGroup checks that the group's elements exist and records it.
func (g *Graph) AddGroup(s GroupSpec) error {
	gr := Group{
		Name:    s.Name,
		Members: ids(s.Members),
		Edges:   ids(s.Edges),
		Avoid:   ids(s.Avoid),
		Options: s.Options,
	}
	if s.InducedEdges {
		seen := map[bubbleset.ElementID]bool{}
		for _, id := range gr.Edges {
			seen[id] = true
		}
		for _, id := range g.InducedEdges(gr.Members) {
			if !seen[id] {
				gr.Edges = append(gr.Edges, id)
			}
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, x := range g.groups {
		if x.Name == s.Name {
			return zerr.With(ErrDuplicateElement, "group", s.Name)
		}
	}
	for _, id := range append(append([]bubbleset.ElementID(nil), gr.Members...), gr.Avoid...) {
		if _, ok := g.nodes[id]; !ok {
			return zerr.With(zerr.With(ErrUnknownNode, "id", string(id)), "group", s.Name)
		}
	}
	for _, id := range gr.Edges {
		if _, ok := g.edges[id]; !ok {
			return zerr.With(zerr.With(ErrUnknownEdge, "id", string(id)), "group", s.Name)
		}
	}
	g.groups = append(g.groups, gr)
	return nil
}

// Groups returns the groups in the order they were added.
func (g *Graph) Groups() []Group {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Group(nil), g.groups...)
}

func (g *Graph) Group(name string) (Group, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, gr := range g.groups {
		if gr.Name == name {
			return gr, nil
		}
	}
	return Group{}, zerr.With(ErrUnknownGroup, "group", name)
}

// Selections returns fresh selections for the group's elements.
func (gr Group) Selections() (members, edges, avoid *bubbleset.Selection) {
	return bubbleset.NewSelection(gr.Members...), bubbleset.NewSelection(gr.Edges...), bubbleset.NewSelection(gr.Avoid...)
}
