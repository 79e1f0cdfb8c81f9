package types

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	_, parseErr := strconv.Atoi("x")
	tests := []struct {
		name    string
		err     error
		target  error
		wantMsg string
	}{
		{
			name:    "format error",
			err:     &FormatError{Line: 3, Keyword: "SJUNC", Field: "inletCode", Msg: "not an integer", Err: parseErr},
			target:  ErrFormat,
			wantMsg: "format error at line 3 (SJUNC.inletCode): not an integer",
		},
		{
			name:    "truncated input",
			err:     &TruncatedInputError{Line: 10, Keyword: "TS", What: "cells", Want: 4, Got: 2},
			target:  ErrTruncatedInput,
			wantMsg: "truncated input at line 10 (TS): want 4 cells, got 2",
		},
		{
			name:    "assembly error",
			err:     &AssemblyError{Line: 1, Keyword: "NODE", Msg: "outside any SLINK"},
			target:  ErrAssembly,
			wantMsg: "assembly error at line 1 (NODE): outside any SLINK",
		},
		{
			name:    "missing collaborator",
			err:     &MissingCollaboratorError{Collaborator: "mask", Msg: "required to read datasets"},
			target:  ErrMissingCollaborator,
			wantMsg: "missing mask: required to read datasets",
		},
		{
			name:    "io error",
			err:     IOError("open", "x.spn", os.ErrNotExist),
			target:  ErrIO,
			wantMsg: "i/o error: open x.spn",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("decode: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.target))
			assert.Contains(t, tt.err.Error(), tt.wantMsg)
		})
	}
}

func TestFormatErrorUnwrapsCause(t *testing.T) {
	_, parseErr := strconv.ParseFloat("abc", 64)
	err := &FormatError{Keyword: "PIPE", Msg: "bad float", Err: parseErr}
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}
