package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/htmlpack/inliner/token"
)

// UnexpectedCloseTagError is returned when a close tag shows up with no
// enclosing open tag left to match it against. This is the only fatal parse
// condition; every other imbalance is recovered by promoting the gathered
// nodes to siblings.
type UnexpectedCloseTagError struct {
	tok *token.CloseTag
}

func NewUnexpectedCloseTagError(tok *token.CloseTag) error {
	return UnexpectedCloseTagError{tok: tok}
}

func (u UnexpectedCloseTagError) Error() string {
	return fmt.Sprintf("unexpected close tag </%s> at %s", u.tok.Name, u.tok.Begin())
}

// Parser builds a document tree from a token stream. The stream should be
// wrapped in a token.Merger so that adjacent text fragments arrive as one
// token.
type Parser struct {
	source token.Stream
}

func NewParser(source token.Stream) *Parser {
	return &Parser{source: source}
}

// frame is one open tag whose children are still being gathered.
// The bottom frame has no tag and gathers the root level nodes.
type frame struct {
	open  *token.OpenTag
	nodes []*Node
}

// Parse consumes the whole stream and returns the document tree.
//
// An open tag pushes a frame; its nodes accumulate until a close tag with
// the same name pops the frame and turns them into children. A close tag
// with a different name means the open tag never really had content: the
// frame is popped, the tag becomes a childless node and everything gathered
// under it moves up as its following siblings, after which the close tag is
// matched against the next frame up. The same resolution applies to every
// frame still open when the input runs out.
//
// The frames live on an explicit stack, so arbitrarily deep nesting cannot
// exhaust the call stack.
func (p *Parser) Parse() (*Tree, error) {
	open := make(stack[*frame], 0, 16)
	open.Push(&frame{})

	for {
		tok, err := p.source.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		top, _ := open.Peek()

		switch t := tok.(type) {
		case *token.Text:
			content := strings.TrimSpace(t.Content)
			if content == "" {
				// Whitespace-only runs produce no node.
				continue
			}

			node := NewTextNode(content)
			node.Range = t.Position
			top.nodes = append(top.nodes, node)
		case *token.OpenTag:
			if t.SelfClosing() {
				top.nodes = append(top.nodes, elementNode(t, nil))
				continue
			}

			open.Push(&frame{open: t})
		case *token.CloseTag:
			if err := p.closeTag(&open, t); err != nil {
				return nil, err
			}
		}
	}

	// The input ran out with tags still open. Resolve them bottom-up the
	// same way a mismatched close tag would.
	for open.Len() > 1 {
		promote(&open)
	}

	root, _ := open.Pop()

	return &Tree{Nodes: root.nodes}, nil
}

// closeTag resolves a close tag against the stack of open frames.
func (p *Parser) closeTag(open *stack[*frame], t *token.CloseTag) error {
	for {
		top, _ := open.Peek()
		if top.open == nil {
			return NewUnexpectedCloseTagError(t)
		}

		if top.open.Name == t.Name {
			f, _ := open.Pop()
			parent, _ := open.Peek()

			node := elementNode(f.open, f.nodes)
			node.Range.EndPos = t.End()
			parent.nodes = append(parent.nodes, node)

			return nil
		}

		promote(open)
	}
}

// promote pops the topmost frame, turning its tag into a childless node and
// its gathered nodes into following siblings at the enclosing level.
func promote(open *stack[*frame]) {
	f, _ := open.Pop()
	parent, _ := open.Peek()

	parent.nodes = append(parent.nodes, elementNode(f.open, nil))
	parent.nodes = append(parent.nodes, f.nodes...)
}

func elementNode(t *token.OpenTag, children []*Node) *Node {
	attributes := AttributeMap(t.Attributes)
	if attributes == nil {
		attributes = NewAttributeMap()
	}

	return &Node{
		Name:       t.Name,
		Attributes: attributes,
		Children:   children,
		Range:      t.Position,
	}
}
