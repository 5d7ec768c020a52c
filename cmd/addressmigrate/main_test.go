package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "partial failure", err: errors.Wrapf(errIncompleteMigration, "%d properties were not migrated", 3), want: 2},
		{name: "cancelled", err: errors.Wrap(context.Canceled, "address migration interrupted"), want: 1},
		{name: "fatal", err: errors.New("unknown subcommand"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
