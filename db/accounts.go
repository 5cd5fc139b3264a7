// ABOUTME: Account and account signal database operations
// ABOUTME: Handles account CRUD, exact-name lookups, and timestamped signals
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outlab/models"
)

func CreateAccount(ctx context.Context, q Querier, account *models.Account) error {
	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		return fmt.Errorf("%w: account name is required", models.ErrValidation)
	}
	account.Industry = strings.TrimSpace(account.Industry)
	account.Website = strings.TrimSpace(account.Website)
	account.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO accounts (name, industry, website, created_at)
		VALUES (?, ?, ?, ?)
	`, account.Name, nullIfEmpty(account.Industry), nullIfEmpty(account.Website), account.CreatedAt)
	if err != nil {
		return translateErr(err, fmt.Sprintf("account %q", account.Name))
	}

	account.ID, err = res.LastInsertId()
	return err
}

func GetAccount(ctx context.Context, q Querier, id int64) (*models.Account, error) {
	account, err := scanAccount(q.QueryRowContext(ctx, `
		SELECT id, name, industry, website, created_at
		FROM accounts WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, notFound("account", id)
	}
	return account, err
}

// FindAccountByName matches the name exactly, as ingestion does.
func FindAccountByName(ctx context.Context, q Querier, name string) (*models.Account, error) {
	account, err := scanAccount(q.QueryRowContext(ctx, `
		SELECT id, name, industry, website, created_at
		FROM accounts WHERE name = ?
	`, strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return nil, notFound("account", fmt.Sprintf("%q", name))
	}
	return account, err
}

func ListAccounts(ctx context.Context, q Querier) ([]models.Account, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, industry, website, created_at
		FROM accounts
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}

	return accounts, rows.Err()
}

// DeleteAccount cascades to the account's contacts and signals.
func DeleteAccount(ctx context.Context, q Querier, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("account", id)
	}
	return nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	var industry, website sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &industry, &website, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Industry = industry.String
	a.Website = website.String
	return &a, nil
}

func AddAccountSignal(ctx context.Context, q Querier, signal *models.AccountSignal) error {
	signal.SignalType = strings.TrimSpace(signal.SignalType)
	if signal.SignalType == "" {
		return fmt.Errorf("%w: signal type is required", models.ErrValidation)
	}
	if signal.Date.IsZero() {
		signal.Date = time.Now().UTC()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO account_signals (account_id, signal_type, details, signal_date)
		VALUES (?, ?, ?, ?)
	`, signal.AccountID, signal.SignalType, nullIfEmpty(signal.Details), signal.Date)
	if err != nil {
		return translateErr(err, fmt.Sprintf("signal for account %d", signal.AccountID))
	}

	signal.ID, err = res.LastInsertId()
	return err
}

func ListAccountSignals(ctx context.Context, q Querier, accountID int64) ([]models.AccountSignal, error) {
	return querySignals(ctx, q, `
		SELECT id, account_id, signal_type, details, signal_date
		FROM account_signals
		WHERE account_id = ?
		ORDER BY signal_date DESC, id DESC
	`, accountID)
}

func querySignals(ctx context.Context, q Querier, query string, args ...any) ([]models.AccountSignal, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []models.AccountSignal
	for rows.Next() {
		var s models.AccountSignal
		var details sql.NullString
		if err := rows.Scan(&s.ID, &s.AccountID, &s.SignalType, &details, &s.Date); err != nil {
			return nil, err
		}
		s.Details = details.String
		signals = append(signals, s)
	}

	return signals, rows.Err()
}
