package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WorkLogRepo   WorkLogRepositoryFacade
	InventoryRepo InventoryRepositoryFacade
	UserRepo      UserRepositoryFacade
	NoticeRepo    NoticeRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
}
