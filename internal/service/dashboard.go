package service

import (
	"context"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.dashboardRepo.Stats(ctx, time.Now())
}

func (s *dashboardService) QuickStats(ctx context.Context) (*domain.QuickStats, error) {
	return s.dashboardRepo.QuickStats(ctx, time.Now())
}
