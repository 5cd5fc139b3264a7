// ABOUTME: Data models for outbound campaign entities
// ABOUTME: Defines Campaign, Cadence, Contact, Account, Activity, and Opportunity structs
package models

import (
	"time"
)

type Campaign struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	HypothesisType      string    `json:"hypothesis_type,omitempty"`
	Industry            string    `json:"industry,omitempty"`
	ICPPersonas         string    `json:"icp_personas,omitempty"`
	MessageAngle        string    `json:"message_angle,omitempty"`
	Trigger             string    `json:"trigger,omitempty"`
	Product             string    `json:"product,omitempty"`
	HypothesisUserStory string    `json:"hypothesis_user_story,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type Document struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Cadence struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaign_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CadenceActivity is a touchpoint template. Adding one stamps an Activity onto
// every contact already in the cadence.
type CadenceActivity struct {
	ID        int64        `json:"id"`
	CadenceID int64        `json:"cadence_id"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountSignal struct {
	ID         int64     `json:"id"`
	AccountID  int64     `json:"account_id"`
	SignalType string    `json:"signal_type"`
	Details    string    `json:"details,omitempty"`
	Date       time.Time `json:"date"`
}

type Contact struct {
	ID        int64         `json:"id"`
	CadenceID int64         `json:"cadence_id"`
	AccountID *int64        `json:"account_id,omitempty"`
	FirstName string        `json:"first_name,omitempty"`
	LastName  string        `json:"last_name,omitempty"`
	Email     string        `json:"email"`
	Title     string        `json:"title,omitempty"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// FullName joins first and last name, skipping blanks.
func (c *Contact) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

type Activity struct {
	ID        int64        `json:"id"`
	ContactID int64        `json:"contact_id"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

type Opportunity struct {
	ID        int64            `json:"id"`
	ContactID int64            `json:"contact_id"`
	Stage     OpportunityStage `json:"stage"`
	Amount    float64          `json:"amount"`
	CreatedAt time.Time        `json:"created_at"`
}

// PipelineEntry is an opportunity joined with the names along its ownership chain.
type PipelineEntry struct {
	Opportunity
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email"`
	AccountName  string `json:"account_name,omitempty"`
	CadenceName  string `json:"cadence_name,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
}
