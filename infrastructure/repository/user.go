package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/fincoach/fincoach-core/infrastructure/database/postgres"
	"github.com/fincoach/fincoach-core/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	GetUserByID(userID int) (*domain.User, error)
	ListCustomers() ([]*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) GetUserByID(userID int) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow(
		"SELECT id, username, email, role, full_name, cluster_id, created_at FROM users WHERE id = $1",
		userID,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Role,
		&user.FullName,
		&user.ClusterID,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListCustomers() ([]*domain.User, error) {
	queryBuilder := squirrel.
		Select("id", "username", "email", "role", "full_name", "cluster_id", "created_at").
		From(usersTable).
		Where(squirrel.Eq{"role": domain.RoleCustomer}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(usersSQL, usersArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Role,
			&user.FullName,
			&user.ClusterID,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
