// SPDX-FileCopyrightText: © 2024 The htmlpack authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"io"
)

// Merger coalesces consecutive Text tokens of the wrapped stream into one.
// The lexer splits a text run whenever it trips over an embedded angle
// bracket; merging the fragments back together here means a consumer never
// sees two adjacent Text tokens. All other tokens pass through unchanged.
type Merger struct {
	source Stream
	// pending holds a non-text token that ended a merge run and still has
	// to be handed out.
	pending Token
}

// MergeText wraps a stream so that consecutive Text tokens come out merged.
func MergeText(source Stream) *Merger {
	return &Merger{source: source}
}

// Token returns the next token, merging runs of Text tokens.
// At the end of the input stream, Token returns nil, io.EOF.
func (m *Merger) Token() (Token, error) {
	tok, err := m.next()
	if err != nil {
		return nil, err
	}

	text, ok := tok.(*Text)
	if !ok {
		return tok, nil
	}

	merged := &Text{Position: text.Position, Content: text.Content, Lit: text.Lit}

	for {
		tok, err := m.next()
		if errors.Is(err, io.EOF) {
			return merged, nil
		}

		if err != nil {
			return nil, err
		}

		text, ok := tok.(*Text)
		if !ok {
			m.pending = tok
			return merged, nil
		}

		merged.Content += text.Content
		merged.Lit += text.Lit
		merged.EndPos = text.EndPos
	}
}

func (m *Merger) next() (Token, error) {
	if m.pending != nil {
		tok := m.pending
		m.pending = nil

		return tok, nil
	}

	return m.source.Token()
}
