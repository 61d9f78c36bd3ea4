package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"attendance-ingest/internal/diagnostic"
	"attendance-ingest/internal/domain"
	"attendance-ingest/internal/parser"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const defaultFileName = "unnamed"

var tracer = otel.Tracer("attendance-ingest/internal/usecase")

// IngestionUseCase orchestrates one ingestion call: parse, resolve, persist, log.
type IngestionUseCase struct {
	identifiers IdentifierRepository
	profiles    ProfileRepository
	reconciler  *PunchReconciler
	uploadLogs  UploadLogRepository
	diagnostics DiagnosticRepository
	locker      ImportLocker
	logger      *zap.Logger

	validate     *validator.Validate
	maxTextChars int
	newID        func() string
	now          func() time.Time
}

// Option configures an IngestionUseCase.
type Option func(*IngestionUseCase)

// WithImportLocker makes concurrent imports of the same text for the same
// organization fail with domain.ErrImportInProgress.
func WithImportLocker(locker ImportLocker) Option {
	return func(uc *IngestionUseCase) { uc.locker = locker }
}

// WithMaxTextChars overrides domain.MaxTextChars.
func WithMaxTextChars(n int) Option {
	return func(uc *IngestionUseCase) {
		if n > 0 {
			uc.maxTextChars = n
		}
	}
}

// NewIngestionUseCase creates a new instance of the usecase.
func NewIngestionUseCase(
	identifiers IdentifierRepository,
	profiles ProfileRepository,
	punches PunchRepository,
	uploadLogs UploadLogRepository,
	diagnostics DiagnosticRepository,
	logger *zap.Logger,
	opts ...Option,
) *IngestionUseCase {
	uc := &IngestionUseCase{
		identifiers:  identifiers,
		profiles:     profiles,
		reconciler:   NewPunchReconciler(punches, logger),
		uploadLogs:   uploadLogs,
		diagnostics:  diagnostics,
		logger:       logger,
		validate:     newValidator(),
		maxTextChars: domain.MaxTextChars,
		newID:        uuid.NewString,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Ingest runs the whole pipeline for one request. Only rejected input and
// infrastructure failures are returned as errors; an undetected format,
// unmatched codes, duplicates and failed rows are reported in the response.
func (uc *IngestionUseCase) Ingest(ctx context.Context, req domain.IngestionRequest) (*domain.IngestionResponse, error) {
	ctx, span := tracer.Start(ctx, "IngestionUseCase.Ingest")
	defer span.End()

	// Step 1: Reject bad input before any parsing
	req, err := uc.checkRequest(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "input rejected")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("organization_id", req.OrganizationID),
		attribute.String("file_name", req.FileName),
		attribute.Bool("diagnostic_mode", req.DiagnosticMode),
	)
	logger := uc.logger.With(
		zap.String("organization_id", req.OrganizationID),
		zap.String("file_name", req.FileName),
	)

	if req.DiagnosticMode {
		report := uc.diagnose(ctx, logger, req)
		return &domain.IngestionResponse{Success: true, DiagnosticMode: true, Diagnostic: &report}, nil
	}

	if uc.locker != nil {
		release, err := uc.locker.Acquire(ctx, importLockKey(req.OrganizationID, req.TextContent))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "import lock")
			return nil, fmt.Errorf("could not lock import: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release import lock", zap.Error(err))
			}
		}()
	}

	// Step 2: Detect the dialect and extract punches
	result := uc.parse(ctx, req.TextContent)
	batchID := uc.newID()
	logger = logger.With(zap.String("batch_id", batchID), zap.String("format", string(result.Format)))

	if len(result.Punches) == 0 {
		return uc.noPunches(ctx, logger, req, batchID, result), nil
	}

	// Step 3: Resolve employee codes to profiles
	resolutions, err := uc.resolve(ctx, req.OrganizationID, result.Punches)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup tables")
		return nil, err
	}
	resolved := make(map[string]domain.Resolution, len(resolutions))
	unmatched := make([]string, 0)
	perMethod := make(map[domain.ResolveMethod]int)
	for _, res := range resolutions {
		resolved[res.EmployeeCode] = res
		if res.Matched() {
			perMethod[res.Method]++
		} else {
			unmatched = append(unmatched, res.EmployeeCode)
		}
	}
	matched := len(resolutions) - len(unmatched)
	logger.Info("employee codes resolved",
		zap.Int("codes", len(resolutions)),
		zap.Int("by_identifier", perMethod[domain.ResolveByIdentifier]),
		zap.Int("by_name", perMethod[domain.ResolveByName]),
		zap.Int("by_email_prefix", perMethod[domain.ResolveByEmailPrefix]),
		zap.Strings("unmatched_codes", unmatched))

	// Step 4: Persist, one row at a time
	summary := uc.reconcile(ctx, req.OrganizationID, batchID, result.Punches, resolved)

	parseErrors := append(append(make([]string, 0, len(result.Errors)+len(summary.Errors)), result.Errors...), summary.Errors...)
	status := domain.UploadStatusCompleted
	if len(parseErrors) > 0 || len(unmatched) > 0 {
		status = domain.UploadStatusCompletedWithErrors
	}

	// Step 5: Write the upload log
	uploadLog := domain.UploadLog{
		ID:                uc.newID(),
		BatchID:           batchID,
		OrganizationID:    req.OrganizationID,
		FileName:          req.FileName,
		Format:            result.Format,
		TotalParsed:       len(result.Punches),
		MatchedEmployees:  matched,
		Inserted:          summary.Inserted,
		DuplicatesSkipped: summary.Duplicates,
		UnmatchedCodes:    unmatched,
		ParseErrors:       parseErrors,
		Status:            status,
		CreatedAt:         uc.now().UTC(),
	}
	if err := uc.uploadLogs.SaveUploadLog(ctx, uploadLog); err != nil {
		logger.Error("failed to save upload log", zap.Error(err))
		parseErrors = append(parseErrors, fmt.Sprintf("upload log: %v", err))
	}

	logger.Info("punch batch ingested",
		zap.Int("total_parsed", len(result.Punches)),
		zap.Int("inserted", summary.Inserted),
		zap.Int("duplicates_skipped", summary.Duplicates),
		zap.Int("errors", len(parseErrors)))

	return &domain.IngestionResponse{
		Success:           true,
		Format:            result.Format,
		BatchID:           batchID,
		TotalParsed:       len(result.Punches),
		Inserted:          summary.Inserted,
		DuplicatesSkipped: summary.Duplicates,
		MatchedEmployees:  matched,
		UnmatchedCodes:    unmatched,
		ParseErrors:       parseErrors,
	}, nil
}

// checkRequest enforces the size limit first, then the required fields.
func (uc *IngestionUseCase) checkRequest(req domain.IngestionRequest) (domain.IngestionRequest, error) {
	if len(req.TextContent) > uc.maxTextChars {
		if n := utf8.RuneCountInString(req.TextContent); n > uc.maxTextChars {
			return req, fmt.Errorf("%w: %d characters exceeds the limit of %d", domain.ErrPayloadTooLarge, n, uc.maxTextChars)
		}
	}

	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	req.FileName = strings.TrimSpace(req.FileName)
	if strings.TrimSpace(req.TextContent) == "" {
		req.TextContent = ""
	}
	if err := uc.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return req, fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(fields, ", "))
		}
		return req, fmt.Errorf("could not validate request: %w", err)
	}
	if req.FileName == "" {
		req.FileName = defaultFileName
	}
	return req, nil
}

func (uc *IngestionUseCase) parse(ctx context.Context, text string) domain.ParseResult {
	_, span := tracer.Start(ctx, "parser.Parse")
	defer span.End()

	result := parser.Parse(text)
	span.SetAttributes(
		attribute.String("format", string(result.Format)),
		attribute.Int("punches", len(result.Punches)),
		attribute.Int("errors", len(result.Errors)),
	)
	return result
}

func (uc *IngestionUseCase) diagnose(ctx context.Context, logger *zap.Logger, req domain.IngestionRequest) domain.DiagnosticReport {
	_, span := tracer.Start(ctx, "diagnostic.Analyze")
	report := diagnostic.Analyze(req.TextContent)
	span.SetAttributes(attribute.String("guess", report.Classification.Guess))
	span.End()

	if err := uc.diagnostics.SaveDiagnostic(ctx, req.OrganizationID, req.FileName, report); err != nil {
		logger.Error("failed to save diagnostic report", zap.Error(err))
	}
	logger.Info("diagnostic report generated",
		zap.String("guess", report.Classification.Guess),
		zap.Strings("signals", report.Classification.Signals))
	return report
}

// noPunches handles a text neither extractor could read: the analyzer runs,
// its report is stored, and a failed upload log is written.
func (uc *IngestionUseCase) noPunches(ctx context.Context, logger *zap.Logger, req domain.IngestionRequest, batchID string, result domain.ParseResult) *domain.IngestionResponse {
	report := uc.diagnose(ctx, logger, req)

	uploadLog := domain.UploadLog{
		ID:             uc.newID(),
		BatchID:        batchID,
		OrganizationID: req.OrganizationID,
		FileName:       req.FileName,
		Format:         result.Format,
		UnmatchedCodes: make([]string, 0),
		ParseErrors:    result.Errors,
		Status:         domain.UploadStatusFailed,
		CreatedAt:      uc.now().UTC(),
	}
	if err := uc.uploadLogs.SaveUploadLog(ctx, uploadLog); err != nil {
		logger.Error("failed to save upload log", zap.Error(err))
	}

	logger.Warn("no punches found", zap.Strings("parse_errors", result.Errors))
	return &domain.IngestionResponse{
		Success:        false,
		Error:          "no attendance punches could be extracted from text_content",
		Format:         result.Format,
		ParseErrors:    result.Errors,
		UnmatchedCodes: make([]string, 0),
		Diagnostic:     &report,
	}
}

func (uc *IngestionUseCase) resolve(ctx context.Context, organizationID string, punches []domain.ParsedPunch) ([]domain.Resolution, error) {
	ctx, span := tracer.Start(ctx, "IngestionUseCase.resolve")
	defer span.End()

	identifiers, err := uc.identifiers.ListIdentifiers(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("could not load employee identifiers: %w", err)
	}
	profiles, err := uc.profiles.ListProfiles(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("could not load profiles: %w", err)
	}
	return ResolveIdentities(CodeHints(punches), NewLookupTables(identifiers, profiles)), nil
}

func (uc *IngestionUseCase) reconcile(ctx context.Context, organizationID, batchID string, punches []domain.ParsedPunch, resolved map[string]domain.Resolution) ReconcileSummary {
	ctx, span := tracer.Start(ctx, "PunchReconciler.Reconcile")
	defer span.End()

	summary := uc.reconciler.Reconcile(ctx, organizationID, batchID, punches, resolved)
	span.SetAttributes(
		attribute.Int("inserted", summary.Inserted),
		attribute.Int("duplicates", summary.Duplicates),
		attribute.Int("errors", len(summary.Errors)),
	)
	return summary
}

// importLockKey identifies an import by organization and text content.
func importLockKey(organizationID, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "punch-import:" + organizationID + ":" + hex.EncodeToString(sum[:])
}
