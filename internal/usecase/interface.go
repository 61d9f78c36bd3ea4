package usecase

import (
	"context"

	"attendance-ingest/internal/domain"
)

// The usecase layer depends on these interfaces, not on a concrete storage engine.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go

// IdentifierRepository lists the employee-code → profile mappings of an organization.
type IdentifierRepository interface {
	ListIdentifiers(ctx context.Context, organizationID string) ([]domain.EmployeeIdentifier, error)
}

// ProfileRepository lists the profiles of an organization.
type ProfileRepository interface {
	ListProfiles(ctx context.Context, organizationID string) ([]domain.Profile, error)
}

// PunchRepository persists attendance punches.
type PunchRepository interface {
	// InsertPunch stores row unless a punch for the same organization,
	// profile and datetime already exists, in which case inserted is false.
	InsertPunch(ctx context.Context, row domain.PunchRow) (inserted bool, err error)
}

// UploadLogRepository is the sink for per-call upload summaries.
type UploadLogRepository interface {
	SaveUploadLog(ctx context.Context, log domain.UploadLog) error
}

// DiagnosticRepository is the sink for diagnostic reports.
type DiagnosticRepository interface {
	SaveDiagnostic(ctx context.Context, organizationID, fileName string, report domain.DiagnosticReport) error
}

// ImportLocker serializes imports sharing the same key across processes.
// Acquire returns domain.ErrImportInProgress when the key is already held.
type ImportLocker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}
