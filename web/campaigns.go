// ABOUTME: HTTP handlers for campaigns, their cadence, and campaign documents
// ABOUTME: Also serves campaign metrics and the overview table as JSON or XLSX
package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/files"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
)

type campaignRequest struct {
	Name                string `json:"name"`
	HypothesisType      string `json:"hypothesis_type"`
	Industry            string `json:"industry"`
	ICPPersonas         string `json:"icp_personas"`
	MessageAngle        string `json:"message_angle"`
	Trigger             string `json:"trigger"`
	Product             string `json:"product"`
	HypothesisUserStory string `json:"hypothesis_user_story"`
}

func (s *Server) listCampaigns(c *gin.Context) {
	campaigns, err := db.ListCampaigns(c.Request.Context(), s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	c.JSON(http.StatusOK, campaigns)
}

func (s *Server) createCampaign(c *gin.Context) {
	var req campaignRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	campaign := &models.Campaign{
		Name:                req.Name,
		HypothesisType:      req.HypothesisType,
		Industry:            req.Industry,
		ICPPersonas:         req.ICPPersonas,
		MessageAngle:        req.MessageAngle,
		Trigger:             req.Trigger,
		Product:             req.Product,
		HypothesisUserStory: req.HypothesisUserStory,
	}
	if err := db.CreateCampaign(c.Request.Context(), s.db, campaign); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (s *Server) getCampaign(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	campaign, err := db.GetCampaign(c.Request.Context(), s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (s *Server) getCampaignByName(c *gin.Context) {
	campaign, err := db.GetCampaignByName(c.Request.Context(), s.db, c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (s *Server) deleteCampaign(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.files.DeleteCampaign(c.Request.Context(), s.db, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) campaignMetrics(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	m, err := metrics.ComputeCampaignMetrics(c.Request.Context(), s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) campaignOverview(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	campaign, err := db.GetCampaign(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	m, err := metrics.ComputeCampaignMetrics(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics.OverviewRows(campaign, m))
}

// overview serves every campaign's summary rows, as JSON or ?format=xlsx.
func (s *Server) overview(c *gin.Context) {
	rows, err := metrics.Overview(c.Request.Context(), s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	if rows == nil {
		rows = []metrics.OverviewRow{}
	}

	if c.Query("format") != "xlsx" {
		c.JSON(http.StatusOK, rows)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="outlab-overview.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := metrics.WriteOverviewXLSX(c.Writer, rows); err != nil {
		s.log.WithError(err).Error("failed to write overview workbook")
	}
}

type cadenceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) getCadence(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	cadence, err := db.GetCadenceForCampaign(c.Request.Context(), s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cadence)
}

func (s *Server) createCadence(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req cadenceRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	cadence := &models.Cadence{CampaignID: id, Name: req.Name, Description: req.Description}
	if err := db.CreateCadence(c.Request.Context(), s.db, cadence); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cadence)
}

// documentView adds the on-disk state so a missing file can be shown as such.
type documentView struct {
	models.Document
	FileMissing bool `json:"file_missing"`
	IsPPTX      bool `json:"is_pptx"`
}

func (s *Server) listDocuments(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := db.GetCampaign(ctx, s.db, id); err != nil {
		s.fail(c, err)
		return
	}
	docs, err := db.ListDocuments(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]documentView, 0, len(docs))
	for i := range docs {
		views = append(views, documentView{
			Document:    docs[i],
			FileMissing: !s.files.Exists(docs[i].FilePath),
			IsPPTX:      metrics.HasPPTX(&docs[i]),
		})
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) uploadDocument(c *gin.Context) {
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

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	doc, err := s.files.AttachDocument(c.Request.Context(), s.db, id, name, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) downloadDocument(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	doc, err := db.GetDocument(c.Request.Context(), s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := s.files.Open(doc.FilePath)
	if err != nil {
		if errors.Is(err, files.ErrFileMissing) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error(), "file_missing": true})
			return
		}
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+files.SanitizeName(doc.Name)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}
