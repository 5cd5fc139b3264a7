// ABOUTME: Contact (lead) database operations
// ABOUTME: Handles CRUD, per-cadence email lookups, and status changes
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

const contactColumns = `id, cadence_id, account_id, first_name, last_name, email, title, status, created_at`

// CreateContact inserts a new contact. Unlike ingestion it never upserts: a
// second contact with the same email in the same cadence fails with ErrConflict.
func CreateContact(ctx context.Context, q Querier, contact *models.Contact) error {
	contact.Email = strings.TrimSpace(contact.Email)
	if contact.Email == "" {
		return fmt.Errorf("%w: contact email is required", models.ErrValidation)
	}
	if contact.Status == "" {
		contact.Status = models.StatusNew
	}
	if !contact.Status.Valid() {
		return fmt.Errorf("%w: unknown contact status %q", models.ErrValidation, contact.Status)
	}
	contact.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO contacts (cadence_id, account_id, first_name, last_name, email, title, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.CadenceID,
		nullInt64(contact.AccountID),
		nullIfEmpty(contact.FirstName),
		nullIfEmpty(contact.LastName),
		contact.Email,
		nullIfEmpty(contact.Title),
		string(contact.Status),
		contact.CreatedAt,
	)
	if err != nil {
		return translateErr(err, fmt.Sprintf("contact %q in cadence %d", contact.Email, contact.CadenceID))
	}

	contact.ID, err = res.LastInsertId()
	return err
}

func GetContact(ctx context.Context, q Querier, id int64) (*models.Contact, error) {
	contact, err := scanContact(q.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFound("contact", id)
	}
	return contact, err
}

func FindContactByEmail(ctx context.Context, q Querier, cadenceID int64, email string) (*models.Contact, error) {
	email = strings.TrimSpace(email)
	contact, err := scanContact(q.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts WHERE cadence_id = ? AND email = ?
	`, cadenceID, email))
	if err == sql.ErrNoRows {
		return nil, notFound("contact", fmt.Sprintf("%q in cadence %d", email, cadenceID))
	}
	return contact, err
}

// ListContacts returns the cadence's contacts, newest first.
func ListContacts(ctx context.Context, q Querier, cadenceID int64) ([]models.Contact, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE cadence_id = ?
		ORDER BY id DESC
	`, cadenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	return contacts, rows.Err()
}

func UpdateContact(ctx context.Context, q Querier, contact *models.Contact) error {
	if !contact.Status.Valid() {
		return fmt.Errorf("%w: unknown contact status %q", models.ErrValidation, contact.Status)
	}

	res, err := q.ExecContext(ctx, `
		UPDATE contacts
		SET account_id = ?, first_name = ?, last_name = ?, title = ?, status = ?
		WHERE id = ?
	`, nullInt64(contact.AccountID),
		nullIfEmpty(contact.FirstName),
		nullIfEmpty(contact.LastName),
		nullIfEmpty(contact.Title),
		string(contact.Status),
		contact.ID,
	)
	if err != nil {
		return translateErr(err, fmt.Sprintf("contact %d", contact.ID))
	}
	return requireAffected(res, "contact", contact.ID)
}

func SetContactStatus(ctx context.Context, q Querier, id int64, status models.ContactStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown contact status %q", models.ErrValidation, status)
	}

	res, err := q.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "contact", id)
}

func requireAffected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	var accountID sql.NullInt64
	var firstName, lastName, title sql.NullString
	var status string

	err := row.Scan(
		&c.ID,
		&c.CadenceID,
		&accountID,
		&firstName,
		&lastName,
		&c.Email,
		&title,
		&status,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.AccountID = int64Ptr(accountID)
	c.FirstName = firstName.String
	c.LastName = lastName.String
	c.Title = title.String
	if c.Status, err = models.ParseContactStatus(status); err != nil {
		return nil, err
	}

	return &c, nil
}
