package domain

// DashboardStats holds the headline counters shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalNotices   int64 `json:"totalNotices"`
	TotalInventory int64 `json:"totalInventory"`
	LowStockItems  int64 `json:"lowStockItems"`
}
