package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

// FilterSyncScheduler periodically derives filters from auto-sync product
// fields across all tenants that have any.
type FilterSyncScheduler struct {
	cron          *cron.Cron
	cronSpec      string
	fieldRepo     repository.FieldRepository
	filterService service.FilterService
}

func NewFilterSyncScheduler(
	cronSpec string,
	fieldRepo repository.FieldRepository,
	filterService service.FilterService,
) *FilterSyncScheduler {
	return &FilterSyncScheduler{
		cron:          cron.New(),
		cronSpec:      cronSpec,
		fieldRepo:     fieldRepo,
		filterService: filterService,
	}
}

// Start registers the sync job and runs the scheduler in the background.
// One tenant failing does not stop the sweep over the rest.
func (s *FilterSyncScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		logger.Info("Starting scheduled filter sync", nil)

		tenantIDs, err := s.fieldRepo.ListAutoSyncTenantIDs()
		if err != nil {
			logger.Error("Failed to list tenants for filter sync", err)
			return
		}

		total := 0
		for _, tenantID := range tenantIDs {
			created, err := s.filterService.SyncFromFields(tenantID)
			if err != nil {
				logger.Error("Scheduled filter sync failed for tenant", err, map[string]interface{}{
					"tenant_id": tenantID,
				})
				continue
			}
			total += created
		}

		logger.Info("Scheduled filter sync finished", map[string]interface{}{
			"tenant_count":  len(tenantIDs),
			"created_count": total,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for filter sync", err)
		return err
	}

	s.cron.Start()
	logger.Info("Filter sync scheduler started successfully", map[string]interface{}{
		"cron": s.cronSpec,
	})

	return nil
}

func (s *FilterSyncScheduler) Stop() {
	logger.Info("Stopping filter sync scheduler...", nil)
	s.cron.Stop()
	logger.Info("Filter sync scheduler stopped", nil)
}
