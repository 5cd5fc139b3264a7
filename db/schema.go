// ABOUTME: Database schema definitions
// ABOUTME: Creates campaign, cadence, contact, account, and pipeline tables with constraints
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	hypothesis_type TEXT,
	industry TEXT,
	icp_personas TEXT,
	message_angle TEXT,
	trigger_event TEXT,
	product TEXT,
	hypothesis_user_story TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at DESC);

CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	file_path TEXT NOT NULL,
	uploaded_at DATETIME NOT NULL,
	FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_documents_campaign_id ON documents(campaign_id);

CREATE TABLE IF NOT EXISTS cadences (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	description TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cadence_activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cadence_id INTEGER NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('email', 'call', 'linkedin', 'task')),
	content TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (cadence_id) REFERENCES cadences(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cadence_activities_cadence_id ON cadence_activities(cadence_id);

CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	industry TEXT,
	website TEXT,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS account_signals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL,
	signal_type TEXT NOT NULL,
	details TEXT,
	signal_date DATETIME NOT NULL,
	FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_account_signals_account_id ON account_signals(account_id);

CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cadence_id INTEGER NOT NULL,
	account_id INTEGER,
	first_name TEXT,
	last_name TEXT,
	email TEXT NOT NULL,
	title TEXT,
	status TEXT NOT NULL DEFAULT 'new' CHECK(status IN ('new', 'active', 'paused', 'converted')),
	created_at DATETIME NOT NULL,
	FOREIGN KEY (cadence_id) REFERENCES cadences(id) ON DELETE CASCADE,
	FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE,
	CONSTRAINT uq_contact_email_per_cadence UNIQUE (email, cadence_id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_cadence_id ON contacts(cadence_id);
CREATE INDEX IF NOT EXISTS idx_contacts_account_id ON contacts(account_id);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('email', 'call', 'linkedin', 'task')),
	content TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_contact_id ON activities(contact_id);

CREATE TABLE IF NOT EXISTS opportunities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL,
	stage TEXT NOT NULL DEFAULT 'New' CHECK(stage IN ('New', 'Qualified', 'Proposal', 'Won', 'Lost')),
	amount REAL NOT NULL DEFAULT 0 CHECK(amount >= 0),
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_opportunities_contact_id ON opportunities(contact_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
