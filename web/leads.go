// ABOUTME: HTTP handlers for cadence templates, contacts, activities, and opportunities
// ABOUTME: Lead files arrive as multipart uploads and go through the importer
package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/importer"
	"github.com/harperreed/outlab/models"
)

type activityRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type cadenceActivityResponse struct {
	Template          *models.CadenceActivity `json:"template"`
	ActivitiesCreated int                     `json:"activities_created"`
}

func (s *Server) listCadenceActivities(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := db.GetCadence(ctx, s.db, id); err != nil {
		s.fail(c, err)
		return
	}
	templates, err := db.ListCadenceActivities(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if templates == nil {
		templates = []models.CadenceActivity{}
	}
	c.JSON(http.StatusOK, templates)
}

func (s *Server) addCadenceActivity(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req activityRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	typ, err := models.ParseActivityType(req.Type)
	if err != nil {
		s.fail(c, err)
		return
	}

	template := &models.CadenceActivity{CadenceID: id, Type: typ, Content: req.Content}
	applied, err := db.AddCadenceActivity(c.Request.Context(), s.db, template)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cadenceActivityResponse{Template: template, ActivitiesCreated: applied})
}

func (s *Server) listContacts(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := db.GetCadence(ctx, s.db, id); err != nil {
		s.fail(c, err)
		return
	}
	contacts, err := db.ListContacts(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

type contactRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	AccountID *int64 `json:"account_id"`
}

func (s *Server) createContact(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req contactRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	contact := &models.Contact{
		CadenceID: id,
		AccountID: req.AccountID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
	}
	if err := db.CreateContact(c.Request.Context(), s.db, contact); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// importContacts takes a multipart "file" (CSV or XLSX) and ingests it as one batch.
func (s *Server) importContacts(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		s.fail(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}
	f, err := header.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("%w: %v", models.ErrStorage, err))
		return
	}
	defer func() { _ = f.Close() }()

	rows, err := importer.Read(header.Filename, f)
	if err != nil {
		s.fail(c, err)
		return
	}

	skip, _ := strconv.ParseBool(c.PostForm("skip_cadence_activities"))
	result, err := s.importer.Ingest(c.Request.Context(), id, rows, importer.Options{SkipCadenceActivities: skip})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) setContactStatus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	status, err := models.ParseContactStatus(req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := db.SetContactStatus(ctx, s.db, id, status); err != nil {
		s.fail(c, err)
		return
	}
	contact, err := db.GetContact(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) logActivity(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req activityRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	typ, err := models.ParseActivityType(req.Type)
	if err != nil {
		s.fail(c, err)
		return
	}

	activity := &models.Activity{ContactID: id, Type: typ, Content: req.Content}
	if err := db.LogActivity(c.Request.Context(), s.db, activity); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

type convertRequest struct {
	Stage  string  `json:"stage"`
	Amount float64 `json:"amount"`
}

func (s *Server) convertContact(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req convertRequest
	// An empty body converts at stage New with no amount
	if c.Request.ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			s.fail(c, err)
			return
		}
	}
	stage, err := models.ParseOpportunityStage(req.Stage)
	if err != nil {
		s.fail(c, err)
		return
	}

	opp, err := db.ConvertContact(c.Request.Context(), s.db, id, stage, req.Amount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, opp)
}

// contactIDs accepts repeated and comma-separated contact_id query values.
func contactIDs(c *gin.Context) ([]int64, error) {
	var ids []int64
	for _, v := range c.QueryArray("contact_id") {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid contact_id %q", models.ErrValidation, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Server) listActivities(c *gin.Context) {
	ids, err := contactIDs(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(ids) == 0 {
		s.fail(c, fmt.Errorf("%w: contact_id is required", models.ErrValidation))
		return
	}
	activities, err := db.ListActivities(c.Request.Context(), s.db, ids)
	if err != nil {
		s.fail(c, err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	c.JSON(http.StatusOK, activities)
}

func (s *Server) listOpportunities(c *gin.Context) {
	ids, err := contactIDs(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	if len(ids) > 0 {
		opps, err := db.ListOpportunities(ctx, s.db, ids)
		if err != nil {
			s.fail(c, err)
			return
		}
		if opps == nil {
			opps = []models.Opportunity{}
		}
		c.JSON(http.StatusOK, opps)
		return
	}

	pipeline, err := db.ListPipeline(ctx, s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	if pipeline == nil {
		pipeline = []models.PipelineEntry{}
	}
	c.JSON(http.StatusOK, pipeline)
}
