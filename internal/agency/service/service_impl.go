package service

import (
	"context"
	"strings"

	"github.com/LangoJordan/annonceluzy/internal/agency/domain"
	pkgdb "github.com/LangoJordan/annonceluzy/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type Service struct {
	log       *zap.Logger
	repo      domain.Repository
	positions domain.PositionStore
	genID     *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, positions domain.PositionStore, genID *snowflake.Node) domain.Service {
	return &Service{
		log:       log.Named("agency.service"),
		repo:      repo,
		positions: positions,
		genID:     genID,
	}
}

func (s *Service) CreateAgency(ctx context.Context, req domain.CreateAgencyRequest) (*domain.Agency, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrAgencyNotFound
	}

	agency := &domain.Agency{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug.Make(name),
		OwnerUserID: req.OwnerUserID,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
	}

	if err := s.repo.CreateAgency(ctx, agency); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAgencyExists
		}
		return nil, err
	}

	s.log.Info("agency created",
		zap.String("agency_id", agency.ID.String()),
		zap.String("slug", agency.Slug),
	)

	return agency, nil
}

func (s *Service) CreateSpace(ctx context.Context, req domain.CreateSpaceRequest) (*domain.Space, error) {
	if _, err := s.repo.FindAgencyByID(ctx, req.AgencyID); err != nil {
		return nil, err
	}

	space := &domain.Space{
		ID:       s.genID.Generate(),
		AgencyID: req.AgencyID,
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		Phone:    strings.TrimSpace(req.Phone),
	}

	if err := s.repo.CreateSpace(ctx, space); err != nil {
		return nil, err
	}

	return space, nil
}

func (s *Service) GrantPosition(ctx context.Context, req domain.GrantPositionRequest) (*domain.Position, error) {
	if _, err := s.repo.FindSpaceByID(ctx, req.SpaceID); err != nil {
		return nil, err
	}

	position := &domain.Position{
		ID:      s.genID.Generate(),
		UserID:  req.UserID,
		SpaceID: req.SpaceID,
		Role:    req.Role,
	}

	if err := s.positions.CreatePosition(ctx, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (s *Service) RevokePosition(ctx context.Context, userID, spaceID snowflake.ID) error {
	return s.positions.DeletePosition(ctx, userID, spaceID)
}

func (s *Service) ListGrantsByUser(ctx context.Context, userID snowflake.ID) ([]domain.PositionGrant, error) {
	return s.positions.FindGrantsByUser(ctx, userID)
}
