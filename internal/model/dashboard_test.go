package model

import (
	"testing"
	"time"
)

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -2)
	old := now.AddDate(0, 0, -30)

	users := []User{
		{ID: "u1", IsActive: true, CreatedAt: recent},
		{ID: "u2", IsActive: true, CreatedAt: old},
		{ID: "u3", IsActive: false, CreatedAt: old},
	}
	quizzes := []Quiz{
		{ID: "q1", IsActive: true, CreatedAt: recent},
		{ID: "q2", IsActive: false, CreatedAt: recent},
		{ID: "q3", IsActive: true, CreatedAt: old},
	}
	materials := []Material{
		{ID: "m1", CreatedAt: recent},
		{ID: "m2", CreatedAt: old},
	}

	stats := ComputeDashboardStats(users, quizzes, materials, now)

	want := DashboardStats{
		TotalUsers:      3,
		ActiveUsers:     2,
		TotalQuizzes:    3,
		ActiveQuizzes:   2,
		InactiveQuizzes: 1,
		TotalMaterials:  2,
		RecentUsers:     1,
		RecentQuizzes:   2,
		RecentMaterials: 1,
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, nil, time.Now())
	if stats != (DashboardStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestSevenDayBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -7)

	quizzes := []Quiz{
		{ID: "q1", CreatedAt: cutoff},                   // exactly on the boundary: not recent
		{ID: "q2", CreatedAt: cutoff.Add(time.Second)},  // just inside
		{ID: "q3", CreatedAt: cutoff.Add(-time.Second)}, // just outside
	}

	stats := ComputeDashboardStats(nil, quizzes, nil, now)
	if stats.RecentQuizzes != 1 {
		t.Errorf("recent quizzes = %d, want 1", stats.RecentQuizzes)
	}
}
