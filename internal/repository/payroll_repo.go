package repository

import (
	"context"

	"hostel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SalaryRepository struct {
	db *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

func (r *SalaryRepository) Create(ctx context.Context, s *domain.Salary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SalaryRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Salary, error) {
	var s domain.Salary
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SalaryRepository) List(ctx context.Context, hostelID int64, status domain.SalaryStatus) ([]domain.Salary, error) {
	q := r.db.WithContext(ctx).Model(&domain.Salary{})
	if hostelID > 0 {
		q = q.Where("hostel_id = ?", hostelID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Salary
	if err := q.Order("month DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SalaryRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Salary{}).Where("id = ?", id).Updates(fields).Error
}

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &e, nil
}

func (r *ExpenseRepository) List(ctx context.Context, hostelID int64, status domain.ExpenseStatus) ([]domain.Expense, error) {
	q := r.db.WithContext(ctx).Model(&domain.Expense{})
	if hostelID > 0 {
		q = q.Where("hostel_id = ?", hostelID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Expense
	if err := q.Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExpenseRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Expense{}).Where("id = ?", id).Updates(fields).Error
}
