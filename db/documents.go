// ABOUTME: Campaign document database operations
// ABOUTME: Records uploaded file references against a campaign
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

func AddDocument(ctx context.Context, q Querier, doc *models.Document) error {
	doc.Name = strings.TrimSpace(doc.Name)
	if doc.Name == "" {
		return fmt.Errorf("%w: document name is required", models.ErrValidation)
	}
	if doc.FilePath == "" {
		return fmt.Errorf("%w: document file path is required", models.ErrValidation)
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO documents (campaign_id, name, file_path, uploaded_at)
		VALUES (?, ?, ?, ?)
	`, doc.CampaignID, doc.Name, doc.FilePath, doc.UploadedAt)
	if err != nil {
		return translateErr(err, fmt.Sprintf("document for campaign %d", doc.CampaignID))
	}

	doc.ID, err = res.LastInsertId()
	return err
}

func GetDocument(ctx context.Context, q Querier, id int64) (*models.Document, error) {
	var d models.Document
	err := q.QueryRowContext(ctx, `
		SELECT id, campaign_id, name, file_path, uploaded_at
		FROM documents WHERE id = ?
	`, id).Scan(&d.ID, &d.CampaignID, &d.Name, &d.FilePath, &d.UploadedAt)

	if err == sql.ErrNoRows {
		return nil, notFound("document", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func ListDocuments(ctx context.Context, q Querier, campaignID int64) ([]models.Document, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, campaign_id, name, file_path, uploaded_at
		FROM documents
		WHERE campaign_id = ?
		ORDER BY uploaded_at DESC, id DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.Name, &d.FilePath, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}
