package service

import (
	"context"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/clock"
	"github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const defaultRenewal = 30 * 24 * time.Hour

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	clk   clock.Clock
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, clk clock.Clock, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("subscription.service"),
		repo:  repo,
		clk:   clk,
		genID: genID,
	}
}

func (s *Service) Renew(ctx context.Context, req domain.RenewRequest) (*domain.Subscription, error) {
	duration := req.Duration
	if duration <= 0 {
		if req.Months > 0 {
			duration = time.Duration(req.Months) * defaultRenewal
		} else {
			duration = defaultRenewal
		}
	}

	now := s.clk.Now()
	subscription := &domain.Subscription{
		ID:       s.genID.Generate(),
		AgencyID: req.AgencyID,
		Status:   true,
		StartAt:  now,
		EndAt:    now.Add(duration),
	}

	if err := s.repo.Insert(ctx, subscription); err != nil {
		return nil, err
	}

	s.log.Info("subscription renewed",
		zap.String("agency_id", req.AgencyID.String()),
		zap.Time("end_at", subscription.EndAt),
	)

	return subscription, nil
}

func (s *Service) List(ctx context.Context, agencyID snowflake.ID) ([]domain.Subscription, error) {
	return s.repo.ListByAgency(ctx, agencyID)
}

func (s *Service) HasActive(ctx context.Context, agencyID snowflake.ID) (bool, error) {
	return s.repo.HasActive(ctx, agencyID, s.clk.Now())
}
