package journal

import (
	"context"
	"strings"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"go.uber.org/zap"
)

// MethodInput is the user-editable part of a Method. Derived statistics are
// not accepted from callers.
type MethodInput struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

type MethodService struct {
	repo   repository.MethodRepository
	newID  func() string
	logger *zap.Logger
}

func NewMethodService(repo repository.MethodRepository, logger *zap.Logger) *MethodService {
	return &MethodService{
		repo:   repo,
		newID:  NewMethodID,
		logger: logger.Named("methods"),
	}
}

func (s *MethodService) List(ctx context.Context) ([]models.Method, error) {
	return s.repo.ListMethods(ctx)
}

func (s *MethodService) Get(ctx context.Context, id string) (*models.Method, error) {
	return s.repo.GetMethod(ctx, id)
}

// Create stores a new method with a generated id and zeroed statistics.
func (s *MethodService) Create(ctx context.Context, in MethodInput) (*models.Method, error) {
	in = trimMethodInput(in)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	method := &models.Method{
		ID:          s.newID(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		IsDefault:   in.IsDefault,
	}
	if err := s.repo.CreateMethod(ctx, method); err != nil {
		return nil, err
	}

	s.logger.Info("Method created", zap.String("id", method.ID), zap.String("code", method.Code))
	return method, nil
}

// Update changes code, name, description and is_default of method id.
func (s *MethodService) Update(ctx context.Context, id string, in MethodInput) (*models.Method, error) {
	in = trimMethodInput(in)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	method := &models.Method{
		ID:          id,
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		IsDefault:   in.IsDefault,
	}
	if err := s.repo.UpdateMethod(ctx, method); err != nil {
		return nil, err
	}

	s.logger.Info("Method updated", zap.String("id", id))
	return s.repo.GetMethod(ctx, id)
}

// Delete removes method id. Trades that referenced it are kept with a null method id.
func (s *MethodService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteMethod(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Method deleted", zap.String("id", id))
	return nil
}

func trimMethodInput(in MethodInput) MethodInput {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
