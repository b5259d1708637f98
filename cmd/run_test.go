package cmd

import (
	"errors"
	"testing"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		res  model.RunResult
		want int
	}{
		{
			name: "clean not-spa no findings",
			res:  model.RunResult{Verdict: model.VerdictNotSPA},
			want: exitClean,
		},
		{
			name: "clean dynamic-page no findings",
			res:  model.RunResult{Verdict: model.VerdictDynamicPage},
			want: exitClean,
		},
		{
			name: "spa verdict detected",
			res:  model.RunResult{Verdict: model.VerdictLikely},
			want: exitDetected,
		},
		{
			name: "definite spa",
			res:  model.RunResult{Verdict: model.VerdictDefinite},
			want: exitDetected,
		},
		{
			name: "not-spa but has a confirmed finding",
			res:  model.RunResult{Verdict: model.VerdictNotSPA, Findings: []model.Finding{{}}},
			want: exitDetected,
		},
		{
			name: "error present wins over spa detection",
			res:  model.RunResult{Verdict: model.VerdictDefinite, Errors: []error{errors.New("navigation failed")}},
			want: exitError,
		},
		{
			name: "error present wins over clean result",
			res:  model.RunResult{Verdict: model.VerdictNotSPA, Errors: []error{errors.New("boom")}},
			want: exitError,
		},
		{
			name: "timeout error counts as analysis error",
			res:  model.RunResult{Verdict: model.VerdictNotSPA, Errors: []error{&model.TimeoutError{URL: "https://example.com", Elapsed: "5m0s"}}},
			want: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.res); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
