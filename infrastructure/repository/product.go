package repository

import (
	"github.com/Masterminds/squirrel"

	"github.com/fincoach/fincoach-core/infrastructure/database/postgres"
	"github.com/fincoach/fincoach-core/internal/domain"
)

const productsTable = "products"

// ProductRepository reads the product catalog. The catalog is owned by
// another service; the core never writes it.
type ProductRepository interface {
	ListProducts() ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) ListProducts() ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select("id", "name", "category", "description", "tags", "interest_rate", "fees", "min_balance", "target_cluster").
		From(productsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	productsSQL, productsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(productsSQL, productsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Description,
			&product.Tags,
			&product.InterestRate,
			&product.Fees,
			&product.MinBalance,
			&product.TargetCluster,
		); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
