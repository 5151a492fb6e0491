package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	fmerrors "github.com/matzehuels/featuremap/pkg/errors"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{"success", nil, exitOK, ""},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), exitInterrupted, ""},
		{"bad crop", fmerrors.New(fmerrors.ErrCodeInvalidCropRange, "crop 9:3 is inverted"), exitBadInput, "error: crop 9:3 is inverted"},
		{"backend down", errors.New("dial tcp: refused"), exitFailure, "error: dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := report(tt.err, &buf); got != tt.want {
				t.Errorf("report() = %d, want %d", got, tt.want)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.msg {
				t.Errorf("stderr = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := execute(context.Background(), []string{"frobnicate"}, &buf); err == nil {
		t.Error("unknown command succeeded")
	}
}
