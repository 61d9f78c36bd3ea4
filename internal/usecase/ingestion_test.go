package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"attendance-ingest/internal/domain"
	"attendance-ingest/internal/parser"
	"attendance-ingest/internal/usecase"
	mock_usecase "attendance-ingest/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const punchExport = `Punch Records
Employee Code: EMP1 Name: John Doe
01/01/2026 09:00 18:00
Employee Code: EMP2 Name: Jane Roe
01/01/2026 08:30
`

// memoryPunches is a PunchRepository enforcing the (organization, profile,
// datetime) uniqueness the database would.
type memoryPunches struct {
	mu   sync.Mutex
	rows map[string]domain.PunchRow
}

func newMemoryPunches() *memoryPunches {
	return &memoryPunches{rows: make(map[string]domain.PunchRow)}
}

func (m *memoryPunches) InsertPunch(_ context.Context, row domain.PunchRow) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := row.OrganizationID + "|" + row.ProfileID + "|" + row.PunchDatetime.String()
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	m.rows[key] = row
	return true, nil
}

type ingestionMocks struct {
	identifiers *mock_usecase.MockIdentifierRepository
	profiles    *mock_usecase.MockProfileRepository
	uploadLogs  *mock_usecase.MockUploadLogRepository
	diagnostics *mock_usecase.MockDiagnosticRepository
}

func newIngestionUseCase(ctrl *gomock.Controller, punches usecase.PunchRepository, opts ...usecase.Option) (*usecase.IngestionUseCase, ingestionMocks) {
	m := ingestionMocks{
		identifiers: mock_usecase.NewMockIdentifierRepository(ctrl),
		profiles:    mock_usecase.NewMockProfileRepository(ctrl),
		uploadLogs:  mock_usecase.NewMockUploadLogRepository(ctrl),
		diagnostics: mock_usecase.NewMockDiagnosticRepository(ctrl),
	}
	uc := usecase.NewIngestionUseCase(m.identifiers, m.profiles, punches, m.uploadLogs, m.diagnostics, zap.NewNop(), opts...)
	return uc, m
}

func (m ingestionMocks) expectLookups(orgID string) {
	m.identifiers.EXPECT().
		ListIdentifiers(gomock.Any(), orgID).
		Return([]domain.EmployeeIdentifier{{OrganizationID: orgID, EmployeeCode: "EMP1", ProfileID: "p-1"}}, nil).
		AnyTimes()
	m.profiles.EXPECT().
		ListProfiles(gomock.Any(), orgID).
		Return([]domain.Profile{{ID: "p-9", OrganizationID: orgID, DisplayName: "Someone Else", Email: "else@example.com"}}, nil).
		AnyTimes()
}

func TestIngestionUseCase_Ingest_RejectsInput(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.IngestionRequest
		opts    []usecase.Option
		wantErr error
		wantMsg string
	}{
		{
			name:    "text over ten million characters",
			req:     domain.IngestionRequest{TextContent: strings.Repeat("a", domain.MaxTextChars+1_000_000), OrganizationID: "org-1"},
			wantErr: domain.ErrPayloadTooLarge,
		},
		{
			name:    "configured limit counts characters not bytes",
			req:     domain.IngestionRequest{TextContent: strings.Repeat("é", 11), OrganizationID: "org-1"},
			opts:    []usecase.Option{usecase.WithMaxTextChars(10)},
			wantErr: domain.ErrPayloadTooLarge,
			wantMsg: "11 characters exceeds the limit of 10",
		},
		{
			name:    "missing organization",
			req:     domain.IngestionRequest{TextContent: punchExport, OrganizationID: "  "},
			wantErr: domain.ErrMissingField,
			wantMsg: "organization_id",
		},
		{
			name:    "blank text",
			req:     domain.IngestionRequest{TextContent: " \r\n", OrganizationID: "org-1"},
			wantErr: domain.ErrMissingField,
			wantMsg: "text_content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, _ := newIngestionUseCase(ctrl, newMemoryPunches(), tt.opts...)
			got, err := uc.Ingest(context.Background(), tt.req)

			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIngestionUseCase_Ingest_LimitAllowsMultibyteText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newIngestionUseCase(ctrl, newMemoryPunches(), usecase.WithMaxTextChars(12))
	m.diagnostics.EXPECT().SaveDiagnostic(gomock.Any(), "org-1", "unnamed", gomock.Any()).Return(nil)

	// 10 characters, 20 bytes
	got, err := uc.Ingest(context.Background(), domain.IngestionRequest{
		TextContent:    strings.Repeat("é", 10),
		OrganizationID: "org-1",
		DiagnosticMode: true,
	})

	require.NoError(t, err)
	assert.True(t, got.Success)
}

func TestIngestionUseCase_Ingest_DiagnosticMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newIngestionUseCase(ctrl, newMemoryPunches())
	m.diagnostics.EXPECT().
		SaveDiagnostic(gomock.Any(), "org-1", "export.txt", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, report domain.DiagnosticReport) error {
			assert.Equal(t, domain.GuessUnknown, report.Classification.Guess)
			assert.Equal(t, 2, report.TokenCounts.EmployeeCodeHeaders)
			return nil
		})

	got, err := uc.Ingest(context.Background(), domain.IngestionRequest{
		TextContent:    punchExport,
		OrganizationID: " org-1 ",
		FileName:       "export.txt",
		DiagnosticMode: true,
	})

	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.True(t, got.DiagnosticMode)
	require.NotNil(t, got.Diagnostic)
	assert.Equal(t, len(punchExport), got.Diagnostic.TotalChars)
	assert.Empty(t, got.BatchID)
	assert.Zero(t, got.Inserted)
}

func TestIngestionUseCase_Ingest_NoPunches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newIngestionUseCase(ctrl, newMemoryPunches())
	m.diagnostics.EXPECT().SaveDiagnostic(gomock.Any(), "org-1", "unnamed", gomock.Any()).Return(nil)
	m.uploadLogs.EXPECT().
		SaveUploadLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log domain.UploadLog) error {
			assert.Equal(t, domain.UploadStatusFailed, log.Status)
			assert.Equal(t, domain.FormatUnknown, log.Format)
			assert.Zero(t, log.TotalParsed)
			assert.NotEmpty(t, log.BatchID)
			return nil
		})

	got, err := uc.Ingest(context.Background(), domain.IngestionRequest{
		TextContent:    "quarterly sales figures\nnothing to see here",
		OrganizationID: "org-1",
	})

	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.NotEmpty(t, got.Error)
	assert.Equal(t, domain.FormatUnknown, got.Format)
	assert.Contains(t, got.ParseErrors, parser.ErrFormatUndetected)
	require.NotNil(t, got.Diagnostic)
	assert.Equal(t, domain.GuessUnknown, got.Diagnostic.Classification.Guess)
}

func TestIngestionUseCase_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	punches := newMemoryPunches()
	uc, m := newIngestionUseCase(ctrl, punches)
	m.expectLookups("org-1")

	var logs []domain.UploadLog
	m.uploadLogs.EXPECT().
		SaveUploadLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log domain.UploadLog) error {
			logs = append(logs, log)
			return nil
		}).
		Times(2)

	req := domain.IngestionRequest{TextContent: punchExport, OrganizationID: "org-1", FileName: "march.txt"}

	first, err := uc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, domain.FormatPunch, first.Format)
	assert.NotEmpty(t, first.BatchID)
	assert.Equal(t, 3, first.TotalParsed)
	assert.Equal(t, 2, first.Inserted)
	assert.Zero(t, first.DuplicatesSkipped)
	assert.Equal(t, 1, first.MatchedEmployees)
	assert.Equal(t, []string{"EMP2"}, first.UnmatchedCodes)
	assert.Empty(t, first.ParseErrors)

	for _, row := range punches.rows {
		assert.Equal(t, "p-1", row.ProfileID)
		assert.Equal(t, "EMP1", row.EmployeeCode)
		assert.Equal(t, first.BatchID, row.UploadBatchID)
		assert.Equal(t, domain.PunchSourceUpload, row.PunchSource)
	}

	second, err := uc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.BatchID, second.BatchID)
	assert.Zero(t, second.Inserted)
	assert.Equal(t, 2, second.DuplicatesSkipped)
	assert.Len(t, punches.rows, 2)

	require.Len(t, logs, 2)
	assert.Equal(t, domain.UploadStatusCompletedWithErrors, logs[0].Status)
	assert.Equal(t, "march.txt", logs[0].FileName)
	assert.Equal(t, first.BatchID, logs[0].BatchID)
	assert.Equal(t, 2, logs[1].DuplicatesSkipped)
}

func TestIngestionUseCase_Ingest_SummaryExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newIngestionUseCase(ctrl, newMemoryPunches())
	m.expectLookups("org-1")
	m.uploadLogs.EXPECT().
		SaveUploadLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log domain.UploadLog) error {
			assert.Equal(t, domain.UploadStatusCompleted, log.Status)
			return nil
		})

	got, err := uc.Ingest(context.Background(), domain.IngestionRequest{
		TextContent:    "01/03/2026 EMP1 09:00 18:00 P\n02/03/2026 EMP1 09:10 00:00 MIS\n",
		OrganizationID: "org-1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FormatSummary, got.Format)
	assert.Equal(t, 3, got.TotalParsed)
	assert.Equal(t, 3, got.Inserted)
	assert.Empty(t, got.UnmatchedCodes)
}

func TestIngestionUseCase_Ingest_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(m ingestionMocks)
		punches    usecase.PunchRepository
		wantErr    bool
		check      func(t *testing.T, got *domain.IngestionResponse)
	}{
		{
			name: "identifier lookup failure",
			setupMocks: func(m ingestionMocks) {
				m.identifiers.EXPECT().ListIdentifiers(gomock.Any(), "org-1").Return(nil, errors.New("db down"))
			},
			punches: newMemoryPunches(),
			wantErr: true,
		},
		{
			name: "profile lookup failure",
			setupMocks: func(m ingestionMocks) {
				m.identifiers.EXPECT().ListIdentifiers(gomock.Any(), "org-1").Return(nil, nil)
				m.profiles.EXPECT().ListProfiles(gomock.Any(), "org-1").Return(nil, errors.New("db down"))
			},
			punches: newMemoryPunches(),
			wantErr: true,
		},
		{
			name: "failing rows are reported and the batch completes",
			setupMocks: func(m ingestionMocks) {
				m.expectLookups("org-1")
				m.uploadLogs.EXPECT().
					SaveUploadLog(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, log domain.UploadLog) error {
						assert.Equal(t, domain.UploadStatusCompletedWithErrors, log.Status)
						assert.Len(t, log.ParseErrors, 1)
						return nil
					})
			},
			punches: &flakyPunches{memoryPunches: newMemoryPunches(), failOn: 1},
			check: func(t *testing.T, got *domain.IngestionResponse) {
				assert.True(t, got.Success)
				assert.Equal(t, 1, got.Inserted)
				require.Len(t, got.ParseErrors, 1)
				assert.Contains(t, got.ParseErrors[0], "row 1 (EMP1 2026-01-01T09:00:00)")
			},
		},
		{
			name: "upload log failure is reported",
			setupMocks: func(m ingestionMocks) {
				m.expectLookups("org-1")
				m.uploadLogs.EXPECT().SaveUploadLog(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			punches: newMemoryPunches(),
			check: func(t *testing.T, got *domain.IngestionResponse) {
				assert.True(t, got.Success)
				assert.Equal(t, 2, got.Inserted)
				assert.Equal(t, []string{"upload log: disk full"}, got.ParseErrors)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, m := newIngestionUseCase(ctrl, tt.punches)
			tt.setupMocks(m)

			got, err := uc.Ingest(context.Background(), domain.IngestionRequest{TextContent: punchExport, OrganizationID: "org-1"})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

// flakyPunches fails the failOn-th insert.
type flakyPunches struct {
	*memoryPunches
	calls  int
	failOn int
}

func (f *flakyPunches) InsertPunch(ctx context.Context, row domain.PunchRow) (bool, error) {
	f.calls++
	if f.calls == f.failOn {
		return false, errors.New("deadlock detected")
	}
	return f.memoryPunches.InsertPunch(ctx, row)
}

func TestIngestionUseCase_Ingest_ImportLock(t *testing.T) {
	t.Run("held lock rejects the import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		locker := mock_usecase.NewMockImportLocker(ctrl)
		locker.EXPECT().
			Acquire(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrImportInProgress)

		uc, _ := newIngestionUseCase(ctrl, newMemoryPunches(), usecase.WithImportLocker(locker))
		got, err := uc.Ingest(context.Background(), domain.IngestionRequest{TextContent: punchExport, OrganizationID: "org-1"})

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrImportInProgress)
	})

	t.Run("lock is released after the import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		released := false
		locker := mock_usecase.NewMockImportLocker(ctrl)
		locker.EXPECT().
			Acquire(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string) (func(context.Context) error, error) {
				assert.True(t, strings.HasPrefix(key, "punch-import:org-1:"))
				return func(context.Context) error {
					released = true
					return nil
				}, nil
			})

		uc, m := newIngestionUseCase(ctrl, newMemoryPunches(), usecase.WithImportLocker(locker))
		m.expectLookups("org-1")
		m.uploadLogs.EXPECT().SaveUploadLog(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.Ingest(context.Background(), domain.IngestionRequest{TextContent: punchExport, OrganizationID: "org-1"})

		require.NoError(t, err)
		assert.True(t, got.Success)
		assert.True(t, released)
	})
}
