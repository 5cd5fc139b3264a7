// ABOUTME: Tests for outbound data models
// ABOUTME: Validates enum parsing, defaults, and contact name formatting
package models

import (
	"errors"
	"testing"
)

func TestParseContactStatus(t *testing.T) {
	status, err := ParseContactStatus(" Paused ")
	if err != nil {
		t.Fatalf("ParseContactStatus failed: %v", err)
	}
	if status != StatusPaused {
		t.Errorf("expected paused, got %s", status)
	}

	_, err = ParseContactStatus("bounced")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestParseActivityType(t *testing.T) {
	for _, want := range ActivityTypes {
		got, err := ParseActivityType(string(want))
		if err != nil {
			t.Fatalf("ParseActivityType(%q) failed: %v", want, err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}

	if _, err := ParseActivityType("sms"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for sms, got %v", err)
	}
}

func TestParseOpportunityStage(t *testing.T) {
	tests := []struct {
		in      string
		want    OpportunityStage
		wantErr bool
	}{
		{"", StageNew, false},
		{"qualified", StageQualified, false},
		{"WON", StageWon, false},
		{"Lost", StageLost, false},
		{"negotiation", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOpportunityStage(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseOpportunityStage(%q): expected validation error, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOpportunityStage(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOpportunityStage(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestContactFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}

	for _, tt := range tests {
		c := &Contact{FirstName: tt.first, LastName: tt.last}
		if got := c.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
