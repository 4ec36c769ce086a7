package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/dxfcut/errs"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad argument", errs.New(errs.InvalidArgument, "op", "bad"), 2},
		{"io failure", errs.New(errs.IOError, "op", "disk full"), 3},
		{"parse error", errs.New(errs.ParseError, "op", "bad group code"), 4},
		{"invalid polyline", errs.New(errs.InvalidPolyline, "op", "mismatched arrays"), 4},
		{"unsupported entity", errs.New(errs.UnsupportedEntity, "op", "no chain"), 5},
		{"not implemented", errs.New(errs.NotImplemented, "op", "unexpected child"), 5},
		{"duplicate section", errs.New(errs.DuplicateSection, "op", "ENTITIES twice"), 6},
		{"unclassified error", errors.New("flag parse failure"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["dxf2camm"])
	assert.True(t, names["camm2svg"])
	assert.True(t, names["dxf2xml"])
	assert.True(t, names["xml2dxf"])
}
