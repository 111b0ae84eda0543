package services

import (
	"context"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/sanitize"
)

type TrainingInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	Location    string `json:"location"`
	Organizer   string `json:"organizer"`
}

type TrainingUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
	Location    *string `json:"location"`
	Organizer   *string `json:"organizer"`
}

type TrainingService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTrainingService(m repomanager.RepositoryManager, logger logging.Logger) *TrainingService {
	return &TrainingService{repomanager: m, logger: logger.With("module", "trainings")}
}

// Create stores a training announcement; all five text fields are required.
func (s *TrainingService) Create(ctx context.Context, in TrainingInput) (*models.Training, error) {
	t := &models.Training{
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Schedule:    sanitize.Text(in.Schedule),
		Location:    sanitize.Text(in.Location),
		Organizer:   sanitize.Text(in.Organizer),
	}
	if t.Title == "" || t.Description == "" || t.Schedule == "" || t.Location == "" || t.Organizer == "" {
		return nil, common.Errorf(common.KindValidation, "all fields are required")
	}

	created, err := s.repomanager.Trainings().Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "training created", "training_id", created.ID)
	return created, nil
}

func (s *TrainingService) List(ctx context.Context) ([]*models.Training, error) {
	return s.repomanager.Trainings().List(ctx)
}

func (s *TrainingService) Get(ctx context.Context, id string) (*models.Training, error) {
	return s.repomanager.Trainings().Get(ctx, id)
}

func (s *TrainingService) Update(ctx context.Context, id string, in TrainingUpdate) (*models.Training, error) {
	patch := models.TrainingPatch{
		Title:       sanitize.Optional(in.Title),
		Description: sanitize.Optional(in.Description),
		Schedule:    sanitize.Optional(in.Schedule),
		Location:    sanitize.Optional(in.Location),
		Organizer:   sanitize.Optional(in.Organizer),
	}
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	t, err := s.repomanager.Trainings().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "training updated", "training_id", id)
	return t, nil
}

func (s *TrainingService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Trainings().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "training deleted", "training_id", id)
	return nil
}
