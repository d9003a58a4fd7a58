package dal

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// This has to be here to let go mods work work
	_ "github.com/mattn/go-sqlite3"
)

type sqlStorage struct {
	db *sql.DB
}

func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage")
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS accounts(
	id         INTEGER NOT NULL PRIMARY KEY,
	created_at timestamp NOT NULL
);
CREATE TABLE IF NOT EXISTS balances(
	account_id INTEGER NOT NULL,
	currency   nvarchar(3) NOT NULL,
	amount     nvarchar(255) NOT NULL,
	PRIMARY KEY(account_id, currency)
);
CREATE TABLE IF NOT EXISTS transactions(
	id           INTEGER NOT NULL PRIMARY KEY,
	from_account INTEGER NOT NULL,
	to_account   INTEGER NOT NULL,
	currency     nvarchar(3) NOT NULL,
	amount       nvarchar(255) NOT NULL,
	status       nvarchar(10) NOT NULL,
	timestamp    timestamp NOT NULL
);
CREATE INDEX IF NOT EXISTS transactions_from ON transactions(from_account);
CREATE INDEX IF NOT EXISTS transactions_to ON transactions(to_account);
`)
	return errors.Wrap(err, "Failed to setup storage")
}

func (s *sqlStorage) SaveAccount(ctx context.Context, account *AccountDTO) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "Failed to begin transaction")
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO accounts(id, created_at)
	VALUES($1, $2)
	ON CONFLICT(id) DO UPDATE
	SET created_at=$2
	`, account.ID, account.CreatedAt); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "Failed to save account %v", account.ID)
	}
	for currency, amount := range account.Balances {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO balances(account_id, currency, amount)
		VALUES($1, $2, $3)
		ON CONFLICT(account_id, currency) DO UPDATE
		SET amount=$3
		`, account.ID, currency, amount); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "Failed to save %v balance of account %v", currency, account.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "Failed to commit account")
}

func (s *sqlStorage) SaveTransaction(ctx context.Context, trx *TransactionDTO) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO transactions(id, from_account, to_account, currency, amount, status, timestamp)
	VALUES($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT(id) DO UPDATE
	SET from_account=$2, to_account=$3, currency=$4, amount=$5, status=$6, timestamp=$7
	`, trx.ID, trx.From, trx.To, trx.Currency, trx.Amount, trx.Status, trx.Timestamp); err != nil {
		return errors.Wrapf(err, "Failed to save transaction %v", trx.ID)
	}
	return nil
}

func (s *sqlStorage) LastIDs(ctx context.Context) (*LastIDs, error) {
	var ids LastIDs
	if err := s.db.QueryRowContext(ctx, `
	SELECT
		(SELECT COALESCE(MAX(id), 0) FROM accounts),
		(SELECT COALESCE(MAX(id), 0) FROM transactions)
	`).Scan(&ids.Account, &ids.Transaction); err != nil {
		return nil, errors.Wrap(err, "Failed to query last ids")
	}
	return &ids, nil
}

func (s *sqlStorage) ListAccounts(ctx context.Context) ([]*AccountDTO, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT
		a.id, a.created_at, b.currency, b.amount
	FROM accounts a
	LEFT JOIN balances b ON b.account_id = a.id
	ORDER BY a.id, b.currency`)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to query accounts")
	}
	defer rows.Close()

	result := []*AccountDTO{}
	var current *AccountDTO
	for rows.Next() {
		var account AccountDTO
		var currency, amount sql.NullString
		if err := rows.Scan(&account.ID, &account.CreatedAt, &currency, &amount); err != nil {
			return nil, errors.Wrap(err, "Failed to read account")
		}
		if current == nil || current.ID != account.ID {
			account.Balances = map[string]string{}
			current = &account
			result = append(result, current)
		}
		if currency.Valid {
			current.Balances[currency.String] = amount.String
		}
	}
	return result, errors.Wrap(rows.Err(), "Failed to read accounts")
}

func (s *sqlStorage) ListTransactions(ctx context.Context, accountID int64) ([]*TransactionDTO, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT
		id, from_account, to_account, currency, amount, status, timestamp
	FROM transactions
	WHERE from_account = $1 OR to_account = $1
	ORDER BY id`, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to query transactions")
	}
	defer rows.Close()

	result := []*TransactionDTO{}
	for rows.Next() {
		trx := &TransactionDTO{}
		if err := rows.Scan(
			&trx.ID,
			&trx.From,
			&trx.To,
			&trx.Currency,
			&trx.Amount,
			&trx.Status,
			&trx.Timestamp,
		); err != nil {
			return nil, errors.Wrap(err, "Failed to read transaction")
		}
		result = append(result, trx)
	}
	return result, errors.Wrap(rows.Err(), "Failed to read transactions")
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// NewSQLStorage returns an instance of a local storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{}
	for _, opt := range opts {
		opt(storage)
	}
	if storage.db == nil {
		return nil, errors.New("Storage requires a db")
	}
	return storage, nil
}
