// ABOUTME: Activity (performed touchpoint) database operations
// ABOUTME: Logs individual activities and lists them for a set of contacts
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

func LogActivity(ctx context.Context, q Querier, activity *models.Activity) error {
	if !activity.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", models.ErrValidation, activity.Type)
	}
	activity.Content = strings.TrimSpace(activity.Content)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO activities (contact_id, type, content, created_at)
		VALUES (?, ?, ?, ?)
	`, activity.ContactID, string(activity.Type), nullIfEmpty(activity.Content), activity.CreatedAt)
	if err != nil {
		return translateErr(err, fmt.Sprintf("activity for contact %d", activity.ContactID))
	}

	activity.ID, err = res.LastInsertId()
	return err
}

// ApplyTemplates stamps one activity per cadence template onto the contact.
// Nothing is deduplicated: applying the same templates twice doubles them.
func ApplyTemplates(ctx context.Context, q Querier, contactID int64, templates []models.CadenceActivity) (int, error) {
	for i := range templates {
		activity := &models.Activity{
			ContactID: contactID,
			Type:      templates[i].Type,
			Content:   templates[i].Content,
		}
		if err := LogActivity(ctx, q, activity); err != nil {
			return i, err
		}
	}
	return len(templates), nil
}

// ListActivities returns activities for any of the given contacts, newest first.
func ListActivities(ctx context.Context, q Querier, contactIDs []int64) ([]models.Activity, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(contactIDs)

	rows, err := q.QueryContext(ctx, `
		SELECT id, contact_id, type, content, created_at
		FROM activities
		WHERE contact_id IN (`+placeholders+`)
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var typ string
		var content sql.NullString
		if err := rows.Scan(&a.ID, &a.ContactID, &typ, &content, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Type, err = models.ParseActivityType(typ); err != nil {
			return nil, err
		}
		a.Content = content.String
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
