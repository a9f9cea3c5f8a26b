// SPDX-FileCopyrightText: © 2024 The htmlpack authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits an input stream into markup tokens in a single forward pass.
//
// A span is collected from a '<' up to the terminating '>' and then
// classified as an open tag, a close tag, or plain text. A span is a tag only
// if every whitespace-separated word in it is purely alphabetic or a
// key="value" pair; anything else, such as code containing comparison
// operators, falls through as text. A second '<' before the '>' cuts the
// pending span short and emits it as text, so one semantic text run may come
// out as several Text tokens. Use a Merger to coalesce them.
type Lexer struct {
	r *bufio.Reader
	// pos is the position of the rune that would be read next by nextR.
	pos Pos
	// prevPos is the position before the most recent call to nextR.
	prevPos Pos
	held    rune
	hasHeld bool
}

// NewLexer creates a new instance, ready to start scanning.
func NewLexer(filename string, r io.Reader) *Lexer {
	l := &Lexer{}
	l.r = bufio.NewReader(r)
	l.pos.File = filename
	l.pos.Line = 1
	l.pos.Col = 1

	return l
}

// Token returns the next token in the input stream.
// At the end of the input stream, Token returns nil, io.EOF.
func (l *Lexer) Token() (Token, error) {
	startPos := l.pos

	r, err := l.nextR()
	if err != nil {
		return nil, err
	}

	if r == '<' {
		return l.lexMarkup(startPos)
	}

	l.prevR(r)

	return l.lexText(startPos)
}

// lexText reads a run of character data, ending just before the next '<' or
// at the end of the input. The run is never empty.
func (l *Lexer) lexText(startPos Pos) (Token, error) {
	var buf strings.Builder

	for {
		r, err := l.nextR()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if r == '<' {
			l.prevR(r)
			break
		}

		buf.WriteRune(r)
	}

	text := &Text{Content: buf.String(), Lit: buf.String()}
	text.Position.BeginPos = startPos
	text.Position.EndPos = l.pos

	return text, nil
}

// lexMarkup collects a span that started with '<' until the terminating '>'
// and classifies it. A span cut short by another '<' or by the end of the
// input cannot be a tag and is flushed as text, so no trailing content is
// ever dropped.
func (l *Lexer) lexMarkup(startPos Pos) (Token, error) {
	var buf strings.Builder

	buf.WriteRune('<')

	for {
		r, err := l.nextR()
		if errors.Is(err, io.EOF) {
			text := &Text{Content: buf.String(), Lit: buf.String()}
			text.Position.BeginPos = startPos
			text.Position.EndPos = l.pos

			return text, nil
		}

		if err != nil {
			return nil, err
		}

		if r == '<' {
			l.prevR(r)

			text := &Text{Content: buf.String(), Lit: buf.String()}
			text.Position.BeginPos = startPos
			text.Position.EndPos = l.pos

			return text, nil
		}

		buf.WriteRune(r)

		if r == '>' {
			return l.classify(startPos, buf.String()), nil
		}
	}
}

// classify decides what kind of token a '>'-terminated span is.
func (l *Lexer) classify(startPos Pos, lit string) Token {
	position := Position{BeginPos: startPos, EndPos: l.pos}

	if strings.HasPrefix(lit, "</") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(lit, "</"), ">"))

		return &CloseTag{Position: position, Name: name, Lit: lit}
	}

	body := strings.TrimSuffix(strings.TrimPrefix(lit, "<"), ">")
	body = strings.TrimSuffix(body, "/")

	declaration := strings.HasPrefix(body, "!")
	words := strings.Fields(strings.TrimPrefix(body, "!"))

	if !looksLikeTag(words) {
		return &Text{Position: position, Content: lit, Lit: lit}
	}

	name := words[0]
	if declaration {
		name = "!" + name
	}

	attributes := make(map[string]string)

	for _, word := range words[1:] {
		key, value, ok := strings.Cut(word, "=")
		if !ok {
			// A bare word is a boolean attribute.
			attributes[key] = ""
			continue
		}

		attributes[key] = strings.Trim(value, `"`)
	}

	return &OpenTag{Position: position, Name: name, Attributes: attributes, Lit: lit}
}

// looksLikeTag reports whether the given words form a plausible tag: a name
// followed by attributes. This is what keeps raw code with bare angle
// brackets, like an inline script, from being misread as markup.
func looksLikeTag(words []string) bool {
	if len(words) == 0 {
		return false
	}

	for _, word := range words {
		if !alphabetic(word) && !strings.Contains(word, `="`) {
			return false
		}
	}

	return true
}

func alphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

// nextR reads the next rune and updates the position.
func (l *Lexer) nextR() (rune, error) {
	l.prevPos = l.pos

	var r rune

	if l.hasHeld {
		r = l.held
		l.hasHeld = false
	} else {
		var err error

		r, _, err = l.r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return r, io.EOF
			}

			return r, NewPosError(l.node(), "unable to read next rune").SetCause(err)
		}
	}

	l.pos.Offset += utf8.RuneLen(r)
	l.pos.Col++

	if r == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	}

	return r, nil
}

// prevR unreads the given rune. Only the most recently read rune may be
// unread, and only once.
func (l *Lexer) prevR(r rune) {
	if l.hasHeld {
		panic("prevR called twice without an intervening nextR")
	}

	l.held = r
	l.hasHeld = true
	l.pos = l.prevPos
}

// node returns a fake node for positional errors.
func (l *Lexer) node() Node {
	return NewNode(l.Pos(), l.Pos())
}

// Pos returns the current position of the lexer.
func (l *Lexer) Pos() Pos {
	return l.pos
}
