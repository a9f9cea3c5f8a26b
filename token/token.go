// SPDX-FileCopyrightText: © 2024 The htmlpack authors
// SPDX-License-Identifier: Apache-2.0

package token

import "strings"

// A Token is an interface for all possible token types.
// Every token carries the literal substring it was scanned from, which is
// needed downstream to tell a self-closing tag from an ordinary open tag.
type Token interface {
	Node
	TokenType() TokenType
	Literal() string
}

type TokenType string

const (
	TokenOpenTag  TokenType = "OpenTag"
	TokenCloseTag TokenType = "CloseTag"
	TokenText     TokenType = "Text"
)

// A Stream produces tokens one at a time.
// At the end of the input stream it returns nil, io.EOF.
type Stream interface {
	Token() (Token, error)
}

// An OpenTag token is a span that opens an element, like `<a href="x">`.
// Boolean (valueless) attributes are stored with an empty string value.
// A declaration such as `<!DOCTYPE html>` is an OpenTag named "!DOCTYPE".
type OpenTag struct {
	Position
	Name       string
	Attributes map[string]string
	Lit        string
}

func (t *OpenTag) TokenType() TokenType {
	return TokenOpenTag
}

func (t *OpenTag) Literal() string {
	return t.Lit
}

// SelfClosing reports whether the tag was written as `<name .../>`.
// Such a tag never has children.
func (t *OpenTag) SelfClosing() bool {
	return strings.HasSuffix(t.Lit, "/>")
}

// A CloseTag token is a span of the form `</name>`.
type CloseTag struct {
	Position
	Name string
	Lit  string
}

func (t *CloseTag) TokenType() TokenType {
	return TokenCloseTag
}

func (t *CloseTag) Literal() string {
	return t.Lit
}

// A Text token represents a run of character data.
// The lexer may split one semantic run into several Text tokens when the run
// contains stray angle brackets; see Merger.
type Text struct {
	Position
	Content string
	Lit     string
}

func (t *Text) TokenType() TokenType {
	return TokenText
}

func (t *Text) Literal() string {
	return t.Lit
}

func (t *Text) String() string {
	return t.Content
}
