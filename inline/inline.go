// Package inline bundles the external resources referenced by a document
// into the document itself, so that the result needs no companion files.
// Text resources are embedded as element content, everything else is encoded
// into a data URI. All filesystem access lives here; the parser and the tree
// never perform I/O.
package inline

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/htmlpack/inliner/parser"
	"github.com/htmlpack/inliner/token"
)

// Inliner rewrites resource references in a document tree.
type Inliner struct {
	base string
	cfg  *Config
	log  *zap.Logger
}

// New creates an Inliner resolving links against the base directory.
// A nil cfg means DefaultConfig, a nil log disables logging.
func New(base string, cfg *Config, log *zap.Logger) *Inliner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Inliner{base: base, cfg: cfg, log: log}
}

// Inline parses the document in r, rewrites every resource reference in
// place and renders the result. Parsing failures and the first failing
// resource load abort the whole run; there is no partial success.
func (in *Inliner) Inline(name string, r io.Reader) (string, error) {
	tree, err := parser.NewParser(token.MergeText(token.NewLexer(name, r))).Parse()
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	if err := in.Apply(tree); err != nil {
		return "", err
	}

	return tree.String(), nil
}

// Apply rewrites resource references in an already parsed tree.
func (in *Inliner) Apply(tree *parser.Tree) error {
	return tree.DepthFirst(in.visit)
}

func (in *Inliner) visit(node *parser.Node) error {
	if node.IsText() {
		return nil
	}

	key, link := in.link(node)
	if link == "" {
		return nil
	}

	link = strings.Trim(link, "/")
	path := filepath.Join(in.base, link)

	if slices.Contains(in.cfg.TextExtensions, filepath.Ext(link)) {
		return in.embedText(node, link, path)
	}

	return in.embedData(node, key, link, path)
}

// link returns the first configured attribute carrying a resource reference.
func (in *Inliner) link(node *parser.Node) (key, value string) {
	for _, key := range in.cfg.Attributes {
		if value, ok := node.Attributes.Get(key); ok && value != "" {
			return key, value
		}
	}

	return "", ""
}

// embedText replaces the node's content with the referenced text resource.
// A stylesheet link additionally turns into a style element.
func (in *Inliner) embedText(node *parser.Node, link, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if filepath.Ext(link) == ".css" {
		node.Name = "style"
		node.Attributes.Delete("rel")
	}

	for _, key := range in.cfg.Attributes {
		node.Attributes.Delete(key)
	}

	node.Children = []*parser.Node{parser.NewTextNode(string(content))}

	in.log.Debug("embedded text resource",
		zap.String("path", path),
		zap.Int("bytes", len(content)))

	return nil
}

// embedData rewrites the link attribute into a base64 data URI.
func (in *Inliner) embedData(node *parser.Node, key, link, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(link))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	node.Attributes.Set(key, "data:"+mediaType+";base64,"+base64.StdEncoding.EncodeToString(data))

	in.log.Debug("inlined binary resource",
		zap.String("path", path),
		zap.String("type", mediaType),
		zap.Int("bytes", len(data)))

	return nil
}
