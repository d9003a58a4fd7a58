package accounts

import (
	"context"

	"github.com/pkg/errors"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

//go:generate mockgen -destination=../internal/mocks/directory_mock.go -package=mocks github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts Directory

var logger = diag.CreateLogger()

// Status holds directory attributes of an account
type Status struct {
	Login    string
	Verified bool
	Online   bool
}

// Directory knows users behind accounts
type Directory interface {
	// Status returns status of the account owner. Second value is false
	// if the directory has no entry for the account
	Status(ctx context.Context, accountID int64) (Status, bool)
}

// Ledger is a subset of the exchange engine the service depends on
type Ledger interface {
	CreateAccount(ctx context.Context) (*ledger.Account, error)
	Snapshot(ctx context.Context, accountID int64) (*ledger.Account, int, error)
}

// Info is a snapshot of account state
type Info struct {
	ID               int64          `json:"uid"`
	Login            string         `json:"login"`
	Online           bool           `json:"online"`
	Verified         bool           `json:"verification"`
	Balances         money.Balances `json:"balance"`
	TransactionCount int            `json:"transactionCount"`
}

// Service creates and describes accounts
type Service interface {
	CreateAccount(ctx context.Context) (int64, error)
	GetInfo(ctx context.Context, accountID int64) (*Info, error)
}

type service struct {
	ledger    Ledger
	directory Directory
}

// ServiceOpt is an option of the service
type ServiceOpt func(svc *service)

// WithLedger sets ledger of the service
func WithLedger(ledger Ledger) ServiceOpt {
	return func(svc *service) {
		svc.ledger = ledger
	}
}

// WithDirectory sets directory to get account owner flags from
func WithDirectory(directory Directory) ServiceOpt {
	return func(svc *service) {
		svc.directory = directory
	}
}

func (svc *service) CreateAccount(ctx context.Context) (int64, error) {
	account, err := svc.ledger.CreateAccount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "Failed to create account")
	}
	return account.ID, nil
}

func (svc *service) GetInfo(ctx context.Context, accountID int64) (*Info, error) {
	account, transactionCount, err := svc.ledger.Snapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	info := &Info{
		ID:               account.ID,
		Balances:         account.Balances,
		TransactionCount: transactionCount,
	}
	if svc.directory != nil {
		if status, ok := svc.directory.Status(ctx, accountID); ok {
			info.Login = status.Login
			info.Verified = status.Verified
			info.Online = status.Online
		} else {
			logger.Debug(ctx, "Account %v has no directory entry", accountID)
		}
	}
	return info, nil
}

// NewService creates an instance of the accounts service
func NewService(opts ...ServiceOpt) Service {
	svc := &service{}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}
