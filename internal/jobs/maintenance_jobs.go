package jobs

import (
	"context"

	"society-console-backend/internal/logger"
)

// MarkOverdueMaintenance flags amenities whose next maintenance date has
// passed, and clears the flag on rescheduled ones.
func (jr *JobRunner) MarkOverdueMaintenance() bool {
	return jr.runWithRecovery("MarkOverdueMaintenance", func(ctx context.Context) error {
		changed, err := jr.services.Amenities.MarkOverdueMaintenance(ctx, jr.now().UTC())
		if err != nil {
			return err
		}
		logger.Info("Updated maintenance overdue flags", "count", len(changed), "ids", changed)
		return nil
	})
}
