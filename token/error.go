// SPDX-FileCopyrightText: © 2024 The htmlpack authors
// SPDX-License-Identifier: Apache-2.0

package token

import "strings"

type ErrDetail struct {
	Node    Node
	Message string
}

func NewErrDetail(node Node, msg string) ErrDetail {
	return ErrDetail{
		Node:    node,
		Message: msg,
	}
}

// PosError represents a positional error within the input stream.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
}

// NewPosError creates a new PosError with the given root cause and optional details.
func NewPosError(node Node, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, ErrDetail{
		Node:    node,
		Message: msg,
	})
	tmp = append(tmp, details...)

	return &PosError{
		Details: tmp,
	}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	if p.Cause == nil {
		return p.firstDetail().Message
	}

	return p.firstDetail().Message + ": " + p.Cause.Error()
}

// Explain returns a longer message naming every detail with its position.
func (p *PosError) Explain() string {
	var sb strings.Builder

	for i, detail := range p.Details {
		if i > 0 {
			sb.WriteString("\n")
		}

		if detail.Node != nil {
			sb.WriteString(detail.Node.Begin().String())
			sb.WriteString(": ")
		}

		sb.WriteString(detail.Message)
	}

	if p.Hint != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(p.Hint)
	}

	return sb.String()
}
