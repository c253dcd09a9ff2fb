package jobs

import (
	"context"

	"society-console-backend/internal/logger"
)

// RecomputeVerificationProgress rewrites stored checklist progress that has
// drifted from the item statuses.
func (jr *JobRunner) RecomputeVerificationProgress() bool {
	return jr.runWithRecovery("RecomputeVerificationProgress", func(ctx context.Context) error {
		saved, err := jr.services.Verification.RecomputeAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("Recomputed verification progress", "saved", saved)
		return nil
	})
}
