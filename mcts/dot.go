package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// Dot renders the current tree as Graphviz DOT, for debugging and
// offline inspection. It is never on the search's control-flow path.
// Expanded, expanding and terminal edges are drawn with distinct
// styles so a reader can tell dead branches from live subtrees at a
// glance; edges that were never expanded are not drawn. The whole tree
// below the root is walked, with no depth limit.
func (t *Tree) Dot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	if t.root == nil {
		return g.String(), nil
	}

	id := 0
	nextID := func() string {
		id++
		return fmt.Sprintf("n%d", id)
	}

	rootID := nextID()
	addNode(g, rootID, t.root)

	var walk func(parentID string, n *Node)
	walk = func(parentID string, n *Node) {
		n.mu.Lock()
		edges := make([]edge, len(n.edges))
		copy(edges, n.edges)
		n.mu.Unlock()

		for _, e := range edges {
			switch e.state {
			case childExpanded:
				childID := nextID()
				addNode(g, childID, e.child)
				addEdge(g, parentID, childID, e, "solid")
				walk(childID, e.child)
			case childTerminal:
				childID := nextID()
				attrs := map[string]string{"label": "terminal", "shape": "doublecircle"}
				_ = g.AddNode("mcts", childID, attrs)
				addEdge(g, parentID, childID, e, "dashed")
			case childExpanding:
				childID := nextID()
				attrs := map[string]string{"label": "expanding...", "shape": "circle", "style": "dotted"}
				_ = g.AddNode("mcts", childID, attrs)
				addEdge(g, parentID, childID, e, "dotted")
			}
		}
	}
	walk(rootID, t.root)

	return g.String(), nil
}

func addNode(g *gographviz.Graph, id string, n *Node) {
	label := fmt.Sprintf("%s\\nV=%.3f", n.Side(), n.PredictedValue())
	attrs := map[string]string{"label": fmt.Sprintf("%q", label), "shape": "box"}
	_ = g.AddNode("mcts", id, attrs)
}

func addEdge(g *gographviz.Graph, fromID, toID string, e edge, style string) {
	label := fmt.Sprintf("%s N=%d P=%.3f", e.pos, e.visits, e.prior)
	attrs := map[string]string{"label": fmt.Sprintf("%q", label), "style": style}
	_ = g.AddEdge(fromID, toID, true, attrs)
}
