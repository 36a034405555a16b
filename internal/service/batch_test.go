package service_test

import (
	"testing"

	"research-portfolio/internal/service"
)

func TestSummarize(t *testing.T) {
	results := []service.ItemResult{
		{Key: "1", Status: service.ItemSucceeded},
		{Key: "2", Status: service.ItemFailed, Error: "boom"},
		{Key: "3", Status: service.ItemSkipped},
		{Key: "4", Status: service.ItemSucceeded},
	}
	want := service.Summary{Total: 4, Succeeded: 2, Failed: 1, Skipped: 1}
	if got := service.Summarize(results); got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if got := service.Summarize(nil); got != (service.Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}
