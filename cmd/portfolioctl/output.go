package main

import (
	"encoding/json"
	"fmt"
	"os"

	"research-portfolio/internal/service"
)

// ErrorResponse is the JSON error written to stdout.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchOutput reports any batch command.
type BatchOutput struct {
	Kind      string         `json:"kind"`
	RunID     string         `json:"runId,omitempty"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Cancelled bool           `json:"cancelled,omitempty"`
	HasMore   bool           `json:"hasMore,omitempty"`
	Failures  []ItemFailure  `json:"failures,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// ItemFailure is one failed batch item.
type ItemFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

func newBatchOutput(kind, runID string, s service.Summary, results []service.ItemResult) BatchOutput {
	out := BatchOutput{
		Kind:      kind,
		RunID:     runID,
		Total:     s.Total,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
		Skipped:   s.Skipped,
		Cancelled: s.Cancelled,
	}
	for _, r := range results {
		if r.Status == service.ItemFailed {
			out.Failures = append(out.Failures, ItemFailure{Key: r.Key, Error: r.Error})
		}
	}
	return out
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputBatch prints a batch report in the selected format.
func outputBatch(out BatchOutput) error {
	if !humanOutput {
		return outputJSON(out)
	}
	fmt.Printf("%s: %d processed, %d succeeded, %d failed, %d skipped\n",
		out.Kind, out.Total, out.Succeeded, out.Failed, out.Skipped)
	if out.RunID != "" {
		fmt.Printf("run: %s\n", out.RunID)
	}
	if out.Cancelled {
		fmt.Println("cancelled before every item ran")
	}
	if out.HasMore {
		fmt.Println("more items remain; pass --run-id to continue")
	}
	for _, f := range out.Failures {
		fmt.Printf("  failed %s: %s\n", f.Key, f.Error)
	}
	for k, v := range out.Extra {
		fmt.Printf("%s: %v\n", k, v)
	}
	return nil
}
