package parser

import (
	"bufio"
	"io"
	"strings"
)

// Encode writes the tree back out as markup, one root node per line.
// Rendering is a read-only fold over the tree: an element without children
// renders self-closing, attributes render in lexicographic key order, and a
// boolean attribute renders as its bare name.
func (t *Tree) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, node := range t.Nodes {
		if err := encodeNode(bw, node); err != nil {
			return err
		}

		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String renders the tree as markup.
func (t *Tree) String() string {
	var sb strings.Builder

	// Writing to a strings.Builder cannot fail.
	_ = t.Encode(&sb)

	return sb.String()
}

func encodeNode(w *bufio.Writer, node *Node) error {
	if node.IsText() {
		_, err := w.WriteString(*node.Text)
		return err
	}

	if len(node.Children) == 0 {
		_, err := w.WriteString("<" + node.Name + encodeAttributes(node.Attributes) + "/>")
		return err
	}

	if _, err := w.WriteString("<" + node.Name + encodeAttributes(node.Attributes) + ">"); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := encodeNode(w, child); err != nil {
			return err
		}
	}

	_, err := w.WriteString("</" + node.Name + ">")

	return err
}

func encodeAttributes(attributes AttributeMap) string {
	var sb strings.Builder

	for _, key := range attributes.Keys() {
		sb.WriteString(" ")
		sb.WriteString(key)

		if value := attributes[key]; value != "" {
			sb.WriteString(`="`)
			sb.WriteString(value)
			sb.WriteString(`"`)
		}
	}

	return sb.String()
}
