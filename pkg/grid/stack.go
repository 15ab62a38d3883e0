package grid

import "slices"

// Token identifies a piece of content placed in a cell, such as a terrain
// or furniture tag. The engine only compares tokens for equality.
type Token string

// Stack is the ordered set of tokens in one cell.
type Stack struct {
	tokens []Token
}

// Contains reports whether t is in the stack.
func (s *Stack) Contains(t Token) bool {
	return slices.Contains(s.tokens, t)
}

// PushBack appends t unless it is already present.
func (s *Stack) PushBack(t Token) {
	if !s.Contains(t) {
		s.tokens = append(s.tokens, t)
	}
}

// PushFront prepends t unless it is already present.
func (s *Stack) PushFront(t Token) {
	if !s.Contains(t) {
		s.tokens = slices.Insert(s.tokens, 0, t)
	}
}

// Remove deletes t, keeping the order of the remaining tokens.
func (s *Stack) Remove(t Token) {
	if i := slices.Index(s.tokens, t); i >= 0 {
		s.tokens = slices.Delete(s.tokens, i, i+1)
	}
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.tokens = s.tokens[:0]
}

// Len returns the number of tokens.
func (s *Stack) Len() int { return len(s.tokens) }

// Tokens returns a copy of the stack contents, front first.
func (s *Stack) Tokens() []Token {
	return slices.Clone(s.tokens)
}

// Equal reports whether s holds exactly tokens, in order.
func (s *Stack) Equal(tokens ...Token) bool {
	return slices.Equal(s.tokens, tokens)
}
