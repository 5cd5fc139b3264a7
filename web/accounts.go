// ABOUTME: HTTP handlers for accounts, account signals, and the demo dashboard
// ABOUTME: The demo endpoint rejects row counts above demo.MaxRows
package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/demo"
	"github.com/harperreed/outlab/models"
)

type accountRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := db.ListAccounts(c.Request.Context(), s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) createAccount(c *gin.Context) {
	var req accountRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	account := &models.Account{Name: req.Name, Industry: req.Industry, Website: req.Website}
	if err := db.CreateAccount(c.Request.Context(), s.db, account); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

type signalRequest struct {
	SignalType string `json:"signal_type"`
	Details    string `json:"details"`
}

func (s *Server) listSignals(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := db.GetAccount(ctx, s.db, id); err != nil {
		s.fail(c, err)
		return
	}
	signals, err := db.ListAccountSignals(ctx, s.db, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if signals == nil {
		signals = []models.AccountSignal{}
	}
	c.JSON(http.StatusOK, signals)
}

func (s *Server) addSignal(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req signalRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	signal := &models.AccountSignal{AccountID: id, SignalType: req.SignalType, Details: req.Details}
	if err := db.AddAccountSignal(c.Request.Context(), s.db, signal); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, signal)
}

const defaultDemoRows = 10

// demo serves a synthetic dashboard. ?seed= makes it reproducible.
func (s *Server) demo(c *gin.Context) {
	seed, err := strconv.ParseInt(c.DefaultQuery("seed", "1"), 10, 64)
	if err != nil {
		seed = 1
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(defaultDemoRows)))
	if err != nil || n < 0 {
		n = defaultDemoRows
	}
	if n > demo.MaxRows {
		s.fail(c, fmt.Errorf("%w: n must be at most %d", models.ErrValidation, demo.MaxRows))
		return
	}
	c.JSON(http.StatusOK, demo.Generate(seed, n))
}
