package payment

import (
	"context"
	"strings"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/repository"
)

// salaryPayout: PENDING -> PAID or REJECTED.
type salaryPayout struct{}

func (salaryPayout) lock(ctx context.Context, tx *repository.Store, id int64) (*domain.Salary, error) {
	s, err := tx.Salaries.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrSalaryNotFound, "Failed to load salary")
	}
	if s.Status != domain.SalaryPending {
		return nil, notPending("Salary")
	}
	return s, nil
}

func (v salaryPayout) decide(ctx context.Context, tx *repository.Store, d Decision, to domain.SalaryStatus) (*Outcome, error) {
	s, err := v.lock(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"status":       to,
		"processed_by": d.ActorID,
		"processed_at": d.At,
	}
	if to == domain.SalaryRejected {
		fields["rejection_reason"] = d.Reason
		s.RejectionReason = d.Reason
	}
	if err := tx.Salaries.UpdateFields(ctx, s.ID, fields); err != nil {
		return nil, database.Classify("Failed to update salary", err)
	}
	s.Status = to
	s.ProcessedBy = &d.ActorID
	s.ProcessedAt = &d.At
	return &Outcome{Type: KindSalary, Salary: s}, nil
}

func (v salaryPayout) Approve(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	return v.decide(ctx, tx, d, domain.SalaryPaid)
}

func (v salaryPayout) Reject(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	return v.decide(ctx, tx, d, domain.SalaryRejected)
}

// expenseClaim: PENDING -> APPROVED or REJECTED; rejection needs a reason.
type expenseClaim struct{}

func (expenseClaim) lock(ctx context.Context, tx *repository.Store, id int64) (*domain.Expense, error) {
	e, err := tx.Expenses.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrExpenseNotFound, "Failed to load expense")
	}
	if e.Status != domain.ExpensePending {
		return nil, notPending("Expense")
	}
	return e, nil
}

func (v expenseClaim) Approve(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	e, err := v.lock(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}
	err = tx.Expenses.UpdateFields(ctx, e.ID, map[string]any{
		"status":      domain.ExpenseApproved,
		"approved_by": d.ActorID,
		"approved_at": d.At,
	})
	if err != nil {
		return nil, database.Classify("Failed to approve expense", err)
	}
	e.Status = domain.ExpenseApproved
	e.ApprovedBy = &d.ActorID
	e.ApprovedAt = &d.At
	return &Outcome{Type: KindExpense, Expense: e}, nil
}

func (v expenseClaim) Reject(ctx context.Context, tx *repository.Store, d Decision) (*Outcome, error) {
	e, err := v.lock(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(d.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	err = tx.Expenses.UpdateFields(ctx, e.ID, map[string]any{
		"status":           domain.ExpenseRejected,
		"rejected_by":      d.ActorID,
		"rejected_at":      d.At,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, database.Classify("Failed to reject expense", err)
	}
	e.Status = domain.ExpenseRejected
	e.RejectedBy = &d.ActorID
	e.RejectedAt = &d.At
	e.RejectionReason = reason
	return &Outcome{Type: KindExpense, Expense: e}, nil
}
