package db

import (
	"context"
	"fmt"
	"strings"
)

// columnTypes fills the type placeholders in migrations for each dialect.
var columnTypes = map[Dialect]*strings.Replacer{
	SQLite: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{timestamp}}", "DATETIME",
		"{{decimal}}", "REAL",
		"{{text}}", "TEXT",
	),
	Postgres: strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{timestamp}}", "TIMESTAMPTZ",
		"{{decimal}}", "NUMERIC(15,2)",
		"{{text}}", "TEXT",
	),
}

// migrations is an ordered list of SQL statements to run.
// Every foreign key nulls itself when the referenced row is deleted.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contact (
		contact_id    {{pk}},
		name          VARCHAR(20)  NOT NULL,
		surname       VARCHAR(20)  NOT NULL,
		father_name   VARCHAR(20)  NOT NULL,
		document      VARCHAR(20)  NOT NULL,
		telephone     VARCHAR(50)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		country       VARCHAR(100) NOT NULL,
		city          VARCHAR(100) NOT NULL,
		postal_code   VARCHAR(20)  NOT NULL,
		street        VARCHAR(100) NOT NULL,
		placement_num VARCHAR(100) NOT NULL,
		notes         {{text}}
	)`,
	`CREATE TABLE IF NOT EXISTS agent (
		agent_id        {{pk}},
		agent_rating    VARCHAR(20) NOT NULL,
		post_name       VARCHAR(30) NOT NULL,
		salary          {{decimal}} NOT NULL,
		currency        CHAR(3)     NOT NULL DEFAULT 'USD',
		hiring_date     {{timestamp}} NOT NULL,
		dismissal_date  {{timestamp}},
		department_name VARCHAR(30) NOT NULL,
		contact_id      INTEGER REFERENCES contact(contact_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS client (
		client_id    {{pk}},
		typeofClient VARCHAR(10) NOT NULL CHECK (typeofClient IN ('tenant', 'renter')),
		contact_id   INTEGER REFERENCES contact(contact_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS estate (
		estate_id     {{pk}},
		estate_name   VARCHAR(20)  NOT NULL,
		estate_status VARCHAR(50)  NOT NULL,
		estate_type   VARCHAR(50)  NOT NULL,
		square        {{decimal}}  NOT NULL,
		price         {{decimal}}  NOT NULL,
		currency      CHAR(3)      NOT NULL DEFAULT 'USD',
		country       VARCHAR(100) NOT NULL,
		city          VARCHAR(100) NOT NULL,
		postal_code   VARCHAR(20)  NOT NULL,
		street        VARCHAR(100) NOT NULL,
		placement_num VARCHAR(100) NOT NULL,
		estate_rating VARCHAR(20)  NOT NULL,
		notes         {{text}},
		agent_id      INTEGER REFERENCES agent(agent_id) ON DELETE SET NULL,
		tenant_id     INTEGER REFERENCES client(client_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contract (
		contract_id     {{pk}},
		contract_name   VARCHAR(100) NOT NULL,
		contract_status VARCHAR(50)  NOT NULL,
		signing_date    {{timestamp}} NOT NULL,
		validity_period {{timestamp}} NOT NULL,
		notes           {{text}},
		estate_id       INTEGER REFERENCES estate(estate_id) ON DELETE SET NULL,
		agent_id        INTEGER REFERENCES agent(agent_id) ON DELETE SET NULL,
		tenant_id       INTEGER REFERENCES client(client_id) ON DELETE SET NULL,
		renter_id       INTEGER REFERENCES client(client_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS request (
		request_id           {{pk}},
		request_name         VARCHAR(100) NOT NULL,
		request_date         {{timestamp}} NOT NULL,
		request_type         VARCHAR(50)  NOT NULL,
		square               {{decimal}},
		price                {{decimal}},
		currency             CHAR(3)      NOT NULL DEFAULT 'USD',
		country              VARCHAR(100),
		city                 VARCHAR(100),
		rental_period_months INTEGER,
		notes                {{text}},
		client_id            INTEGER REFERENCES client(client_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS offer (
		offer_id        {{pk}},
		offer_name      VARCHAR(100) NOT NULL,
		offer_date      {{timestamp}} NOT NULL,
		offer_type      VARCHAR(50)  NOT NULL,
		client_feedback {{text}},
		notes           {{text}},
		client_id       INTEGER REFERENCES client(client_id) ON DELETE SET NULL,
		agent_id        INTEGER REFERENCES agent(agent_id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contract_validity ON contract (validity_period)`,
	`CREATE INDEX IF NOT EXISTS idx_request_date ON request (request_date)`,
	`CREATE INDEX IF NOT EXISTS idx_offer_date ON offer (offer_date)`,
}

// Migrate runs all migrations in order. Every statement is idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	types, ok := columnTypes[d.dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", d.dialect)
	}

	for i, m := range migrations {
		if _, err := d.ExecContext(ctx, types.Replace(m)); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
