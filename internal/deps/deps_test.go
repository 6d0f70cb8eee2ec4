package deps

import (
	"context"
	"testing"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	results := CheckBinaries(context.Background(), []Requirement{
		{Name: "Shell", Command: "sh", Description: "Always present"},
		{Name: "Ghost", Command: "definitely-not-a-real-binary-xyz", Optional: true},
		{Name: "Blank", Command: "  "},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Available {
		t.Errorf("expected sh to be available: %+v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Errorf("expected ghost binary to be missing with detail: %+v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Errorf("expected blank command rejection: %+v", results[2])
	}
}

func TestCheckBinariesProbesVersion(t *testing.T) {
	results := CheckBinaries(context.Background(), []Requirement{
		{
			Name:        "Fake tool",
			Command:     "sh",
			VersionArgs: []string{"-c", "echo faketool 1.2.3; echo extra line"},
		},
		{
			Name:        "Broken probe",
			Command:     "sh",
			VersionArgs: []string{"-c", "exit 7"},
		},
	})
	if !results[0].Available || results[0].Version != "faketool 1.2.3" {
		t.Errorf("expected first output line as version: %+v", results[0])
	}
	if !results[1].Available || results[1].Version != "" {
		t.Errorf("failed probe must leave the tool available with no version: %+v", results[1])
	}
}
