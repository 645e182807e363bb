package model

import "time"

// HealthStatus is the body returned by GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardStats is computed client-side from the loaded stores; the
// backend has no aggregate endpoint for it.
type DashboardStats struct {
	TotalUsers      int
	ActiveUsers     int
	TotalQuizzes    int
	ActiveQuizzes   int
	InactiveQuizzes int
	TotalMaterials  int
	RecentUsers     int
	RecentQuizzes   int
	RecentMaterials int
}

// ComputeDashboardStats derives the dashboard card values from the loaded
// entity lists. Recent counts cover the trailing seven days.
func ComputeDashboardStats(users []User, quizzes []Quiz, materials []Material, now time.Time) DashboardStats {
	cutoff := now.AddDate(0, 0, -7)

	stats := DashboardStats{
		TotalUsers:     len(users),
		TotalQuizzes:   len(quizzes),
		TotalMaterials: len(materials),
	}

	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		if u.CreatedAt.After(cutoff) {
			stats.RecentUsers++
		}
	}
	for _, q := range quizzes {
		if q.IsActive {
			stats.ActiveQuizzes++
		}
		if q.CreatedAt.After(cutoff) {
			stats.RecentQuizzes++
		}
	}
	stats.InactiveQuizzes = stats.TotalQuizzes - stats.ActiveQuizzes
	for _, m := range materials {
		if m.CreatedAt.After(cutoff) {
			stats.RecentMaterials++
		}
	}

	return stats
}
