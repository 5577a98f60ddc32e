package application

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

type PlannerService struct {
	repo domain.PlannerItemRepository
}

func NewPlannerService(repo domain.PlannerItemRepository) *PlannerService {
	return &PlannerService{repo: repo}
}

func (s *PlannerService) CreateItem(item *domain.PlannerItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.repo.Save(item)
}

func (s *PlannerService) UpdateItem(actingUserID string, item domain.PlannerItem) error {
	existing, err := s.repo.FindByID(item.ID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(existing.UserID, actingUserID); err != nil {
		return err
	}

	item.UserID = existing.UserID
	if err := item.Validate(); err != nil {
		return err
	}
	return s.repo.Update(item)
}

func (s *PlannerService) GetItem(actingUserID string, itemID int) (*domain.PlannerItem, error) {
	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(item.UserID, actingUserID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PlannerService) GetUserItems(userID string) ([]domain.PlannerItem, error) {
	return s.repo.FindByUser(userID)
}

func (s *PlannerService) DeleteItem(actingUserID string, itemID int) error {
	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(item.UserID, actingUserID); err != nil {
		return err
	}
	return s.repo.Delete(itemID)
}
