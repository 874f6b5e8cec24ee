package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Aging interface {
		Replace(ctx context.Context, accounts []AgingAccount) error
		Head(ctx context.Context, limit int) ([]AgingAccount, error)
	}

	Outstanding interface {
		Replace(ctx context.Context, loans []OutstandingLoan) error
		Head(ctx context.Context, limit int) ([]OutstandingLoan, error)
	}

	Reports interface {
		GetAgingSummary(ctx context.Context) ([]AgingSummaryRow, error)
		GetRiskProfile(ctx context.Context) ([]RiskProfileRow, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Aging:       &AgingStore{db: db},
		Outstanding: &OutstandingStore{db: db},
		Reports:     &ReportsStore{db: db},
	}
}
