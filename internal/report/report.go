// Package report renders a runner.Result as a colorized console summary,
// grounded on the teacher's lib/output.go FormatOutput (tablewriter Table
// case) and its cmd/query.go color.New(...).SprintFunc() idiom.
package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/runner"
)

var (
	verdictColor = map[model.Verdict]func(a ...interface{}) string{
		model.VerdictDefinite:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		model.VerdictVeryLikely:  color.New(color.FgGreen).SprintFunc(),
		model.VerdictLikely:      color.New(color.FgYellow).SprintFunc(),
		model.VerdictPossible:    color.New(color.FgYellow).SprintFunc(),
		model.VerdictDynamicPage: color.New(color.FgCyan).SprintFunc(),
		model.VerdictNotSPA:      color.New(color.FgWhite).SprintFunc(),
	}
	severityColor = map[string]func(a ...interface{}) string{
		"CRITICAL": color.New(color.FgRed, color.Bold).SprintFunc(),
		"HIGH":     color.New(color.FgRed).SprintFunc(),
		"MEDIUM":   color.New(color.FgYellow).SprintFunc(),
		"LOW":      color.New(color.FgWhite).SprintFunc(),
	}
)

// Print renders one run's verdict, detector breakdown, and taint findings.
// Each invocation is tagged with a fresh random uuid printed in the
// summary header; the id is generated here and is not written to the log.
func Print(res model.RunResult) {
	runID := uuid.New()
	fmt.Printf("run %s — %s\n", runID, res.URL)

	vc := verdictColor[res.Verdict]
	if vc == nil {
		vc = fmt.Sprint
	}
	fmt.Printf("verdict: %s (confidence %.2f)\n", vc(string(res.Verdict)), res.Confidence)

	printDetections(res.Detections)
	printFindings(res.Findings)

	for _, err := range res.Errors {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error: "), err)
	}
}

func printDetections(detections []model.DetectionResult) {
	buf := new(bytes.Buffer)
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"signal", "detected", "confidence", "description"})
	table.SetBorder(true)
	for _, d := range detections {
		table.Append([]string{
			d.SignalName,
			fmt.Sprintf("%t", d.Detected),
			fmt.Sprintf("%.2f", d.Confidence),
			d.Description,
		})
	}
	table.Render()
	fmt.Print(buf.String())
}

func printFindings(findings []model.Finding) {
	if len(findings) == 0 {
		return
	}
	buf := new(bytes.Buffer)
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"severity", "confidence", "sink", "sources", "location"})
	table.SetBorder(true)
	for _, f := range findings {
		sc := severityColor[f.Severity]
		sev := f.Severity
		if sc != nil {
			sev = sc(f.Severity)
		}
		table.Append([]string{
			sev,
			fmt.Sprintf("%.2f", f.Confidence),
			f.Flow.SinkName,
			fmt.Sprint(f.Flow.SourceNames),
			f.Flow.LocationURL,
		})
	}
	table.Render()
	fmt.Print(buf.String())
}

// PrintComparison renders a --compare-all run: one row per strategy with
// its verdict, confidence, and finding count.
func PrintComparison(url string, results map[config.Strategy]runner.Result) {
	fmt.Printf("strategy comparison — %s\n", url)
	buf := new(bytes.Buffer)
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"strategy", "verdict", "confidence", "actions", "findings"})
	table.SetBorder(true)
	for strat, r := range results {
		vc := verdictColor[r.Run.Verdict]
		verdict := string(r.Run.Verdict)
		if vc != nil {
			verdict = vc(verdict)
		}
		table.Append([]string{
			string(strat),
			verdict,
			fmt.Sprintf("%.2f", r.Run.Confidence),
			fmt.Sprintf("%d", r.Run.Counters.ActionsPerformed),
			fmt.Sprintf("%d", len(r.Run.Findings)),
		})
	}
	table.Render()
	fmt.Print(buf.String())
}
