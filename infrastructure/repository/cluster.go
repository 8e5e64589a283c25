package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/fincoach/fincoach-core/infrastructure/database/postgres"
	"github.com/fincoach/fincoach-core/internal/domain"
)

const clustersTable = "clusters"

// ClusterRepository writes segment assignments. ReplaceAssignments is
// the batch path used by retraining: the cluster table upsert and every
// user update commit together or not at all, so concurrent readers never
// observe a partially reassigned customer base.
type ClusterRepository interface {
	UpsertClusters(clusters []*domain.Cluster) error
	SetUserCluster(userID int, clusterIndex int) error
	ReplaceAssignments(ctx context.Context, clusters []*domain.Cluster, assignments map[int]int) error
}

type clusterRepository struct {
	conn *postgres.Connection
}

func NewClusterRepository(conn *postgres.Connection) ClusterRepository {
	return &clusterRepository{
		conn: conn,
	}
}

func (r *clusterRepository) UpsertClusters(clusters []*domain.Cluster) error {
	return upsertClusters(r.conn, clusters)
}

func (r *clusterRepository) SetUserCluster(userID int, clusterIndex int) error {
	return setUserCluster(r.conn, userID, clusterIndex)
}

func (r *clusterRepository) ReplaceAssignments(
	ctx context.Context,
	clusters []*domain.Cluster,
	assignments map[int]int,
) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := upsertClusters(tx, clusters); err != nil {
			return err
		}
		for userID, clusterIndex := range assignments {
			if err := setUserCluster(tx, userID, clusterIndex); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertClusters(q postgres.Queryer, clusters []*domain.Cluster) error {
	for _, cluster := range clusters {
		queryBuilder := squirrel.
			Insert(clustersTable).
			Columns("id", "name", "description").
			Values(cluster.ID, cluster.Name, cluster.Description).
			Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description").
			PlaceholderFormat(squirrel.Dollar)

		clusterSQL, clusterArgs, err := queryBuilder.ToSql()
		if err != nil {
			return err
		}

		if _, err := q.Exec(clusterSQL, clusterArgs...); err != nil {
			return err
		}
	}

	return nil
}

func setUserCluster(q postgres.Queryer, userID int, clusterIndex int) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("cluster_id", clusterIndex).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	userSQL, userArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(userSQL, userArgs...)
	return err
}
