package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/htmlpack/inliner/token"
)

func TestParser(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []*Node
		wantErr bool
	}{
		{
			name: "minimal",
			text: "<tag/>",
			want: []*Node{NewNode("tag")},
		},

		{
			name: "minimal, space after tag name",
			text: "<tag />",
			want: []*Node{NewNode("tag")},
		},

		{
			name: "boolean attributes",
			text: "<tag one two three/>",
			want: []*Node{
				NewNode("tag").
					AddAttribute("one", "").
					AddAttribute("two", "").
					AddAttribute("three", ""),
			},
		},

		{
			name: "boolean attributes, multiple spaces between",
			text: "<tag   one    two    three />",
			want: []*Node{
				NewNode("tag").
					AddAttribute("one", "").
					AddAttribute("two", "").
					AddAttribute("three", ""),
			},
		},

		{
			name: "value attributes, self closing",
			text: `<tag one="foo" two="foo" three="foo"/>`,
			want: []*Node{
				NewNode("tag").
					AddAttribute("one", "foo").
					AddAttribute("two", "foo").
					AddAttribute("three", "foo"),
			},
		},

		{
			name: "value attributes, not self closing",
			text: `<tag one="foo" two="foo" three="foo"></tag>`,
			want: []*Node{
				NewNode("tag").
					AddAttribute("one", "foo").
					AddAttribute("two", "foo").
					AddAttribute("three", "foo"),
			},
		},

		{
			name: "full tag, empty",
			text: "<tag></tag>",
			want: []*Node{NewNode("tag")},
		},

		{
			name: "text content",
			text: "<tag>text</tag>",
			want: []*Node{
				NewNode("tag").AddChildren(NewTextNode("text")),
			},
		},

		{
			name: "text content, trim whitespace padding",
			text: "<tag>  text  </tag>",
			want: []*Node{
				NewNode("tag").AddChildren(NewTextNode("text")),
			},
		},

		{
			name: "whitespace-only content yields no children",
			text: "<tag>   \n\t </tag>",
			want: []*Node{NewNode("tag")},
		},

		{
			name: "node content, single child",
			text: "<tag><tag/></tag>",
			want: []*Node{
				NewNode("tag").AddChildren(NewNode("tag")),
			},
		},

		{
			name: "node content, multi child",
			text: "<tag>\n    <tag one=\"foo\"/>\n    <tag>text</tag>\n</tag>",
			want: []*Node{
				NewNode("tag").AddChildren(
					NewNode("tag").AddAttribute("one", "foo"),
					NewNode("tag").AddChildren(NewTextNode("text")),
				),
			},
		},

		{
			name: "node content, nested",
			text: "<tag><tag><tag>text</tag></tag></tag>",
			want: []*Node{
				NewNode("tag").AddChildren(
					NewNode("tag").AddChildren(
						NewNode("tag").AddChildren(NewTextNode("text")),
					),
				),
			},
		},

		{
			name: "script containing left arrow",
			text: `<script>if (1 < 2) {alert("hi");}</script>`,
			want: []*Node{
				NewNode("script").AddChildren(
					NewTextNode(`if (1 < 2) {alert("hi");}`),
				),
			},
		},

		{
			name: "tag mismatch, open tag without corresponding close tag",
			text: "<outer>\n    <inner>\n    text\n</outer>",
			want: []*Node{
				NewNode("outer").AddChildren(
					NewNode("inner"),
					NewTextNode("text"),
				),
			},
		},

		{
			name:    "tag mismatch, close tag without corresponding open tag",
			text:    "<outer>\n    text\n    </inner>\n</outer>",
			wantErr: true,
		},

		{
			name:    "close tag with nothing open at all",
			text:    "</tag>",
			wantErr: true,
		},

		{
			name: "unclosed tags resolve at end of input",
			text: "<a><b>text",
			want: []*Node{
				NewNode("a"),
				NewNode("b"),
				NewTextNode("text"),
			},
		},

		{
			name: "doctype: open tag without a close tag",
			text: "<!DOCTYPE html>",
			want: []*Node{
				NewNode("!DOCTYPE").AddAttribute("html", ""),
			},
		},

		{
			name: "doctype followed by document root",
			text: "<!DOCTYPE html>\n<html>\n    <body>\n    </body>\n</html>",
			want: []*Node{
				NewNode("!DOCTYPE").AddAttribute("html", ""),
				NewNode("html").AddChildren(NewNode("body")),
			},
		},

		{
			name: "multiple top level siblings",
			text: "<a/><b/>text",
			want: []*Node{
				NewNode("a"),
				NewNode("b"),
				NewTextNode("text"),
			},
		},

		{
			name: "duplicate attribute, last occurrence wins",
			text: `<tag one="a" one="b"/>`,
			want: []*Node{
				NewNode("tag").AddAttribute("one", "b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parseTree(tt.text)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got tree:\n%s", tree.String())
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			want := &Tree{Nodes: tt.want}
			if diff := cmp.Diff(want, tree, treeCmpOptions()...); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserUnexpectedCloseTagError(t *testing.T) {
	_, err := parseTree("<outer>text</inner></outer>")
	if err == nil {
		t.Fatal("expected error")
	}

	var unexpected UnexpectedCloseTagError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected an UnexpectedCloseTagError but got %T: %v", err, err)
	}

	if !strings.Contains(err.Error(), "</inner>") {
		t.Errorf("error should name the offending tag: %v", err)
	}
}

func parseTree(text string) (*Tree, error) {
	lex := token.NewLexer("parser_test.go", strings.NewReader(text))
	return NewParser(token.MergeText(lex)).Parse()
}

func treeCmpOptions() []cmp.Option {
	return []cmp.Option{
		cmpopts.IgnoreFields(Node{}, "Range"),
		cmpopts.EquateEmpty(),
	}
}
