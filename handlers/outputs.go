// ABOUTME: Tool output shapes and model conversions
// ABOUTME: Timestamps are RFC3339 strings so output schemas stay plain JSON
package handlers

import (
	"time"

	"github.com/harperreed/outlab/models"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type CampaignOutput struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	HypothesisType      string `json:"hypothesis_type,omitempty"`
	Industry            string `json:"industry,omitempty"`
	ICPPersonas         string `json:"icp_personas,omitempty"`
	MessageAngle        string `json:"message_angle,omitempty"`
	Trigger             string `json:"trigger,omitempty"`
	Product             string `json:"product,omitempty"`
	HypothesisUserStory string `json:"hypothesis_user_story,omitempty"`
	CreatedAt           string `json:"created_at"`
}

func campaignToOutput(c *models.Campaign) CampaignOutput {
	return CampaignOutput{
		ID:                  c.ID,
		Name:                c.Name,
		HypothesisType:      c.HypothesisType,
		Industry:            c.Industry,
		ICPPersonas:         c.ICPPersonas,
		MessageAngle:        c.MessageAngle,
		Trigger:             c.Trigger,
		Product:             c.Product,
		HypothesisUserStory: c.HypothesisUserStory,
		CreatedAt:           formatTime(c.CreatedAt),
	}
}

type CadenceOutput struct {
	ID          int64  `json:"id"`
	CampaignID  int64  `json:"campaign_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func cadenceToOutput(c *models.Cadence) CadenceOutput {
	return CadenceOutput{
		ID:          c.ID,
		CampaignID:  c.CampaignID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

type DocumentOutput struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	UploadedAt string `json:"uploaded_at"`
}

func documentToOutput(d *models.Document) DocumentOutput {
	return DocumentOutput{ID: d.ID, Name: d.Name, FilePath: d.FilePath, UploadedAt: formatTime(d.UploadedAt)}
}

// ActivityOutput serves both logged activities and cadence templates.
type ActivityOutput struct {
	ID        int64  `json:"id"`
	ContactID int64  `json:"contact_id,omitempty"`
	CadenceID int64  `json:"cadence_id,omitempty"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func activityToOutput(a *models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:        a.ID,
		ContactID: a.ContactID,
		Type:      string(a.Type),
		Content:   a.Content,
		CreatedAt: formatTime(a.CreatedAt),
	}
}

func templateToOutput(t *models.CadenceActivity) ActivityOutput {
	return ActivityOutput{
		ID:        t.ID,
		CadenceID: t.CadenceID,
		Type:      string(t.Type),
		Content:   t.Content,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

type AccountOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	CreatedAt string `json:"created_at"`
}

func accountToOutput(a *models.Account) AccountOutput {
	return AccountOutput{
		ID:        a.ID,
		Name:      a.Name,
		Industry:  a.Industry,
		Website:   a.Website,
		CreatedAt: formatTime(a.CreatedAt),
	}
}

type SignalOutput struct {
	ID         int64  `json:"id"`
	AccountID  int64  `json:"account_id"`
	SignalType string `json:"signal_type"`
	Details    string `json:"details,omitempty"`
	Date       string `json:"date"`
}

func signalToOutput(s *models.AccountSignal) SignalOutput {
	return SignalOutput{
		ID:         s.ID,
		AccountID:  s.AccountID,
		SignalType: s.SignalType,
		Details:    s.Details,
		Date:       formatTime(s.Date),
	}
}

type ContactOutput struct {
	ID        int64  `json:"id"`
	CadenceID int64  `json:"cadence_id"`
	AccountID *int64 `json:"account_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func contactToOutput(c *models.Contact) ContactOutput {
	return ContactOutput{
		ID:        c.ID,
		CadenceID: c.CadenceID,
		AccountID: c.AccountID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Title:     c.Title,
		Status:    string(c.Status),
		CreatedAt: formatTime(c.CreatedAt),
	}
}

type OpportunityOutput struct {
	ID           int64   `json:"id"`
	ContactID    int64   `json:"contact_id"`
	Stage        string  `json:"stage"`
	Amount       float64 `json:"amount"`
	CreatedAt    string  `json:"created_at"`
	ContactName  string  `json:"contact_name,omitempty"`
	ContactEmail string  `json:"contact_email,omitempty"`
	AccountName  string  `json:"account_name,omitempty"`
	CadenceName  string  `json:"cadence_name,omitempty"`
	CampaignName string  `json:"campaign_name,omitempty"`
}

func opportunityToOutput(o *models.Opportunity) OpportunityOutput {
	return OpportunityOutput{
		ID:        o.ID,
		ContactID: o.ContactID,
		Stage:     string(o.Stage),
		Amount:    o.Amount,
		CreatedAt: formatTime(o.CreatedAt),
	}
}

func pipelineToOutput(e *models.PipelineEntry) OpportunityOutput {
	out := opportunityToOutput(&e.Opportunity)
	out.ContactName = e.ContactName
	out.ContactEmail = e.ContactEmail
	out.AccountName = e.AccountName
	out.CadenceName = e.CadenceName
	out.CampaignName = e.CampaignName
	return out
}
