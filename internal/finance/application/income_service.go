package application

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

type IncomeService struct {
	repo domain.IncomeRepository
}

func NewIncomeService(repo domain.IncomeRepository) *IncomeService {
	return &IncomeService{repo: repo}
}

func (s *IncomeService) CreateIncome(income *domain.Income) error {
	if income.ReceiptImage == "" {
		income.ReceiptImage = domain.DefaultReceiptImage
	}
	if err := income.Validate(); err != nil {
		return err
	}
	return s.repo.Save(income)
}

func (s *IncomeService) UpdateIncome(actingUserID string, income domain.Income) error {
	existing, err := s.repo.FindByID(income.ID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(existing.UserID, actingUserID); err != nil {
		return err
	}

	income.UserID = existing.UserID
	if income.ReceiptImage == "" {
		income.ReceiptImage = existing.ReceiptImage
	}
	if err := income.Validate(); err != nil {
		return err
	}
	return s.repo.Update(income)
}

func (s *IncomeService) GetIncome(actingUserID string, incomeID int) (*domain.Income, error) {
	income, err := s.repo.FindByID(incomeID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(income.UserID, actingUserID); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *IncomeService) GetUserIncome(userID string) ([]domain.Income, error) {
	return s.repo.FindByUser(userID)
}

func (s *IncomeService) DeleteIncome(actingUserID string, incomeID int) error {
	income, err := s.repo.FindByID(incomeID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(income.UserID, actingUserID); err != nil {
		return err
	}
	return s.repo.Delete(incomeID)
}
