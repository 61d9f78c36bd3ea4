package usecase

import (
	"context"
	"fmt"

	"attendance-ingest/internal/domain"

	"go.uber.org/zap"
)

// ReconcileSummary counts the outcome of persisting one batch.
type ReconcileSummary struct {
	Inserted   int
	Duplicates int
	Errors     []string
}

// PunchReconciler persists resolved punches one row at a time.
type PunchReconciler struct {
	repo   PunchRepository
	logger *zap.Logger
}

// NewPunchReconciler creates a new reconciler instance.
func NewPunchReconciler(repo PunchRepository, logger *zap.Logger) *PunchReconciler {
	return &PunchReconciler{repo: repo, logger: logger}
}

// Reconcile inserts every punch whose code resolved to a profile, tagging each
// row with batchID. Punches of unmatched codes are skipped. A failing row is
// recorded and the batch carries on; a cancelled context stops the batch and
// leaves rows inserted so far in place.
func (r *PunchReconciler) Reconcile(ctx context.Context, organizationID, batchID string, punches []domain.ParsedPunch, resolved map[string]domain.Resolution) ReconcileSummary {
	var summary ReconcileSummary

	for i, p := range punches {
		rowNo := i + 1
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("batch interrupted before row %d: %v", rowNo, err))
			r.logger.Warn("punch batch interrupted",
				zap.String("batch_id", batchID),
				zap.Int("row", rowNo),
				zap.Error(err))
			break
		}

		res, ok := resolved[p.EmployeeCode]
		if !ok || !res.Matched() {
			continue
		}

		at, err := p.Time()
		if err != nil {
			summary.Errors = append(summary.Errors, rowError(rowNo, p, err))
			continue
		}

		inserted, err := r.repo.InsertPunch(ctx, domain.PunchRow{
			OrganizationID: organizationID,
			ProfileID:      res.ProfileID,
			EmployeeCode:   p.EmployeeCode,
			CardNo:         p.CardNo,
			PunchDatetime:  at,
			PunchSource:    domain.PunchSourceUpload,
			RawStatus:      p.RawStatus,
			UploadBatchID:  batchID,
		})
		if err != nil {
			summary.Errors = append(summary.Errors, rowError(rowNo, p, err))
			r.logger.Error("punch insert failed",
				zap.String("batch_id", batchID),
				zap.String("employee_code", p.EmployeeCode),
				zap.String("punch_datetime", p.PunchDatetime),
				zap.Error(err))
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Duplicates++
		}
	}
	return summary
}

func rowError(rowNo int, p domain.ParsedPunch, err error) string {
	return fmt.Sprintf("row %d (%s %s): %v", rowNo, p.EmployeeCode, p.PunchDatetime, err)
}
