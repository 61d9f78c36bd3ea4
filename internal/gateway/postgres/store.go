// Package postgres stores punches, upload logs and diagnostics in PostgreSQL
// and serves the identity lookup tables.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"attendance-ingest/internal/domain"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects through the pgx database/sql driver and pings the server.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}
	return db, nil
}

// Store implements the usecase repositories on one *sql.DB.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListIdentifiers returns the employee code mappings of the organization.
func (s *Store) ListIdentifiers(ctx context.Context, organizationID string) ([]domain.EmployeeIdentifier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT organization_id, employee_code, profile_id
		FROM employee_identifiers
		WHERE organization_id = $1
	`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("could not query employee identifiers: %w", err)
	}
	defer rows.Close()

	var identifiers []domain.EmployeeIdentifier
	for rows.Next() {
		var ident domain.EmployeeIdentifier
		if err := rows.Scan(&ident.OrganizationID, &ident.EmployeeCode, &ident.ProfileID); err != nil {
			return nil, fmt.Errorf("could not scan employee identifier: %w", err)
		}
		identifiers = append(identifiers, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return identifiers, nil
}

// ListProfiles returns the profiles of the organization.
func (s *Store) ListProfiles(ctx context.Context, organizationID string) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, display_name, email
		FROM profiles
		WHERE organization_id = $1
	`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("could not query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var (
			p           domain.Profile
			displayName sql.NullString
			email       sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.OrganizationID, &displayName, &email); err != nil {
			return nil, fmt.Errorf("could not scan profile: %w", err)
		}
		p.DisplayName = displayName.String
		p.Email = email.String
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// InsertPunch relies on the unique (organization_id, profile_id,
// punch_datetime) index: a conflicting row affects nothing.
func (s *Store) InsertPunch(ctx context.Context, row domain.PunchRow) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_punches
			(id, organization_id, profile_id, employee_code, card_no, punch_datetime, punch_source, raw_status, upload_batch_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)
		ON CONFLICT (organization_id, profile_id, punch_datetime) DO NOTHING
	`, uuid.NewString(), row.OrganizationID, row.ProfileID, row.EmployeeCode, row.CardNo,
		row.PunchDatetime, row.PunchSource, row.RawStatus, row.UploadBatchID)
	if err != nil {
		return false, fmt.Errorf("could not insert punch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return n == 1, nil
}

// SaveUploadLog records the outcome of one ingestion.
func (s *Store) SaveUploadLog(ctx context.Context, log domain.UploadLog) error {
	unmatched, err := json.Marshal(nonNil(log.UnmatchedCodes))
	if err != nil {
		return fmt.Errorf("could not encode unmatched codes: %w", err)
	}
	parseErrors, err := json.Marshal(nonNil(log.ParseErrors))
	if err != nil {
		return fmt.Errorf("could not encode parse errors: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attendance_upload_logs
			(id, batch_id, organization_id, file_name, format, total_parsed, matched_employees,
			 inserted, duplicates_skipped, unmatched_codes, parse_errors, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, log.ID, log.BatchID, log.OrganizationID, log.FileName, string(log.Format), log.TotalParsed,
		log.MatchedEmployees, log.Inserted, log.DuplicatesSkipped, string(unmatched), string(parseErrors),
		string(log.Status), log.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not insert upload log: %w", err)
	}
	return nil
}

// SaveDiagnostic stores a diagnostic report as JSON.
func (s *Store) SaveDiagnostic(ctx context.Context, organizationID, fileName string, report domain.DiagnosticReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("could not encode diagnostic report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attendance_diagnostics (id, organization_id, file_name, guess, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), organizationID, fileName, report.Classification.Guess, string(payload), report.GeneratedAt)
	if err != nil {
		return fmt.Errorf("could not insert diagnostic report: %w", err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
