package parser

// DepthFirst walks the tree in pre-order, calling visit on every node before
// descending into its children. The child list is read only after visit
// returns, so a visit callback may mutate the node it was handed, including
// replacing its children, and the walk will follow the mutated tree.
// The first error returned by visit aborts the walk and is passed through to
// the caller; mutations applied before the abort stay applied.
func (t *Tree) DepthFirst(visit func(*Node) error) error {
	return visitNodes(t.Nodes, visit)
}

func visitNodes(nodes []*Node, visit func(*Node) error) error {
	stk := make(stack[*Node], 0, 16)

	// reverse iteration so that the first node is popped first
	for i := len(nodes) - 1; i >= 0; i-- {
		stk.Push(nodes[i])
	}

	for node, ok := stk.Pop(); ok; node, ok = stk.Pop() {
		if err := visit(node); err != nil {
			return err
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stk.Push(node.Children[i])
		}
	}

	return nil
}
