package repository

import (
	"github.com/Masterminds/squirrel"

	"github.com/fincoach/fincoach-core/infrastructure/database/postgres"
	"github.com/fincoach/fincoach-core/internal/domain"
)

const transactionsTable = "transactions"

// TransactionRepository is the transaction-read boundary of the
// intelligence core. Transactions are immutable once ingested and are
// always returned in timestamp order for time-series construction.
type TransactionRepository interface {
	ListByUser(userID int) ([]*domain.Transaction, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) ListByUser(userID int) ([]*domain.Transaction, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "date", "category", "debit", "credit", "balance", "description").
		From(transactionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(querySQL, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Date,
			&tx.Category,
			&tx.Debit,
			&tx.Credit,
			&tx.Balance,
			&tx.Description,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
