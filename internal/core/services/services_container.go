package services

import (
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.WorkLog = NewWorkLogService(repos.WorkLogRepo, repos.UserRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.UserRepo)
	container.Notice = NewNoticeService(repos.NoticeRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
