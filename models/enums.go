// ABOUTME: Closed enumerations for contact status, activity type, and opportunity stage
// ABOUTME: Parse functions reject unknown values so they never reach the database
package models

import (
	"fmt"
	"strings"
)

type ContactStatus string

const (
	StatusNew       ContactStatus = "new"
	StatusActive    ContactStatus = "active"
	StatusPaused    ContactStatus = "paused"
	StatusConverted ContactStatus = "converted"
)

// ContactStatuses lists every status in display order.
var ContactStatuses = []ContactStatus{StatusNew, StatusActive, StatusPaused, StatusConverted}

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusNew, StatusActive, StatusPaused, StatusConverted:
		return true
	}
	return false
}

func ParseContactStatus(s string) (ContactStatus, error) {
	status := ContactStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown contact status %q", ErrValidation, s)
	}
	return status, nil
}

type ActivityType string

const (
	ActivityEmail    ActivityType = "email"
	ActivityCall     ActivityType = "call"
	ActivityLinkedIn ActivityType = "linkedin"
	ActivityTask     ActivityType = "task"
)

var ActivityTypes = []ActivityType{ActivityEmail, ActivityCall, ActivityLinkedIn, ActivityTask}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityEmail, ActivityCall, ActivityLinkedIn, ActivityTask:
		return true
	}
	return false
}

func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown activity type %q", ErrValidation, s)
	}
	return t, nil
}

type OpportunityStage string

const (
	StageNew       OpportunityStage = "New"
	StageQualified OpportunityStage = "Qualified"
	StageProposal  OpportunityStage = "Proposal"
	StageWon       OpportunityStage = "Won"
	StageLost      OpportunityStage = "Lost"
)

var OpportunityStages = []OpportunityStage{StageNew, StageQualified, StageProposal, StageWon, StageLost}

func (s OpportunityStage) Valid() bool {
	switch s {
	case StageNew, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

// ParseOpportunityStage matches stage names case-insensitively. An empty
// string yields StageNew.
func ParseOpportunityStage(s string) (OpportunityStage, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StageNew, nil
	}
	for _, stage := range OpportunityStages {
		if strings.EqualFold(string(stage), s) {
			return stage, nil
		}
	}
	return "", fmt.Errorf("%w: unknown opportunity stage %q", ErrValidation, s)
}
