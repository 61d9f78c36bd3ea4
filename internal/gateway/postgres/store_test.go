package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"attendance-ingest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock, NewStore(db)
}

func TestStore_ListIdentifiers(t *testing.T) {
	_, mock, store := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"organization_id", "employee_code", "profile_id"}).
		AddRow("org-1", "EMP1", "p-1").
		AddRow("org-1", "EMP2", "p-2")
	mock.ExpectQuery(`FROM employee_identifiers`).
		WithArgs("org-1").
		WillReturnRows(rows)

	got, err := store.ListIdentifiers(context.Background(), "org-1")

	require.NoError(t, err)
	assert.Equal(t, []domain.EmployeeIdentifier{
		{OrganizationID: "org-1", EmployeeCode: "EMP1", ProfileID: "p-1"},
		{OrganizationID: "org-1", EmployeeCode: "EMP2", ProfileID: "p-2"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListProfiles(t *testing.T) {
	_, mock, store := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "organization_id", "display_name", "email"}).
		AddRow("p-1", "org-1", "John Doe", "john@example.com").
		AddRow("p-2", "org-1", nil, nil)
	mock.ExpectQuery(`FROM profiles`).
		WithArgs("org-1").
		WillReturnRows(rows)

	got, err := store.ListProfiles(context.Background(), "org-1")

	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{
		{ID: "p-1", OrganizationID: "org-1", DisplayName: "John Doe", Email: "john@example.com"},
		{ID: "p-2", OrganizationID: "org-1"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListProfiles_QueryError(t *testing.T) {
	_, mock, store := setupMockDB(t)

	mock.ExpectQuery(`FROM profiles`).
		WithArgs("org-1").
		WillReturnError(errors.New("connection refused"))

	got, err := store.ListProfiles(context.Background(), "org-1")

	assert.Nil(t, got)
	assert.ErrorContains(t, err, "could not query profiles")
}

func TestStore_InsertPunch(t *testing.T) {
	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	row := domain.PunchRow{
		OrganizationID: "org-1",
		ProfileID:      "p-1",
		EmployeeCode:   "EMP1",
		PunchDatetime:  at,
		PunchSource:    domain.PunchSourceUpload,
		RawStatus:      "P",
		UploadBatchID:  "batch-1",
	}

	tests := []struct {
		name         string
		result       driver.Result
		execErr      error
		wantInserted bool
		wantErr      bool
	}{
		{
			name:         "new punch",
			result:       sqlmock.NewResult(0, 1),
			wantInserted: true,
		},
		{
			name:         "conflicting punch is skipped",
			result:       sqlmock.NewResult(0, 0),
			wantInserted: false,
		},
		{
			name:    "exec failure",
			execErr: errors.New("deadlock detected"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, store := setupMockDB(t)

			exec := mock.ExpectExec(`INSERT INTO attendance_punches .* ON CONFLICT \(organization_id, profile_id, punch_datetime\) DO NOTHING`).
				WithArgs(sqlmock.AnyArg(), "org-1", "p-1", "EMP1", "", at, domain.PunchSourceUpload, "P", "batch-1")
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(tt.result)
			}

			inserted, err := store.InsertPunch(context.Background(), row)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantInserted, inserted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_SaveUploadLog(t *testing.T) {
	_, mock, store := setupMockDB(t)

	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO attendance_upload_logs`).
		WithArgs("log-1", "batch-1", "org-1", "march.txt", "punch", 3, 1, 2, 0,
			`["EMP2"]`, `[]`, "completed_with_errors", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveUploadLog(context.Background(), domain.UploadLog{
		ID:               "log-1",
		BatchID:          "batch-1",
		OrganizationID:   "org-1",
		FileName:         "march.txt",
		Format:           domain.FormatPunch,
		TotalParsed:      3,
		MatchedEmployees: 1,
		Inserted:         2,
		UnmatchedCodes:   []string{"EMP2"},
		Status:           domain.UploadStatusCompletedWithErrors,
		CreatedAt:        createdAt,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveDiagnostic(t *testing.T) {
	_, mock, store := setupMockDB(t)

	generatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO attendance_diagnostics`).
		WithArgs(sqlmock.AnyArg(), "org-1", "scan.txt", domain.GuessUnknown, sqlmock.AnyArg(), generatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveDiagnostic(context.Background(), "org-1", "scan.txt", domain.DiagnosticReport{
		TotalChars:     10,
		Classification: domain.Classification{Guess: domain.GuessUnknown},
		GeneratedAt:    generatedAt,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
