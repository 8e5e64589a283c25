package segmenting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository/mocks"
	"github.com/fincoach/fincoach-core/internal/domain"
)

func newTestStore(t *testing.T) *modelstore.Store {
	t.Helper()
	store, err := modelstore.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func customer(id int) *domain.User {
	return &domain.User{ID: id, Username: "user", Role: domain.RoleCustomer}
}

// spendingHistory builds a daily debit history with the given size so
// customers land in distinguishable regions of feature space.
func spendingHistory(days int, dailyDebit float64) []*domain.Transaction {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	balance := 10000.0

	var txs []*domain.Transaction
	for d := 0; d < days; d++ {
		balance -= dailyDebit
		txs = append(txs, tx(start.AddDate(0, 0, d), "Market", dailyDebit, balance))
	}
	return txs
}

func TestPredictWithoutTrainedModelReturnsDefaultCluster(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(
		mocks.NewMockUserRepository(ctrl),
		mocks.NewMockTransactionRepository(ctrl),
		mocks.NewMockClusterRepository(ctrl),
		newTestStore(t),
	)

	clusterIndex, err := service.Predict(42)
	require.NoError(t, err)
	assert.Equal(t, DefaultClusterIndex, clusterIndex)
}

func TestTrainFailsWithoutCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().ListCustomers().Return(nil, nil)

	service := NewService(
		userRepo,
		mocks.NewMockTransactionRepository(ctrl),
		mocks.NewMockClusterRepository(ctrl),
		newTestStore(t),
	)

	_, err := service.Train(context.Background())
	assert.ErrorIs(t, err, ErrNoCustomers)
}

func TestTrainAssignsEveryCustomerAndPersistsModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []*domain.User{
		customer(1), customer(2), customer(3), customer(4),
		customer(5), customer(6), customer(7), customer(8),
	}
	histories := map[int][]*domain.Transaction{
		1: spendingHistory(30, 2000), // heavy spenders
		2: spendingHistory(28, 1900),
		3: spendingHistory(20, 150), // moderate
		4: spendingHistory(22, 140),
		5: spendingHistory(10, 5), // frugal
		6: spendingHistory(9, 6),
		7: nil, // brand new
		8: nil,
	}

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().ListCustomers().Return(users, nil)

	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	for id, history := range histories {
		transactionRepo.EXPECT().ListByUser(id).Return(history, nil)
	}

	var captured map[int]int
	clusterRepo := mocks.NewMockClusterRepository(ctrl)
	clusterRepo.EXPECT().
		ReplaceAssignments(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, clusters []*domain.Cluster, assignments map[int]int) error {
			require.Len(t, clusters, 4)
			captured = assignments
			return nil
		})

	store := newTestStore(t)
	service := NewService(userRepo, transactionRepo, clusterRepo, store)

	result, err := service.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.ClusterCount)
	assert.Equal(t, 8, result.UserCount)
	assert.GreaterOrEqual(t, result.SilhouetteScore, -1.0)
	assert.LessOrEqual(t, result.SilhouetteScore, 1.0)

	require.Len(t, captured, 8)
	for userID, clusterIndex := range captured {
		assert.GreaterOrEqual(t, clusterIndex, 0, "user %d", userID)
		assert.Less(t, clusterIndex, 4, "user %d", userID)
	}

	// Heavy spenders must rank above the frugal group after the
	// centroid-based relabeling
	assert.Equal(t, 2, captured[1])
	assert.Equal(t, captured[1], captured[2])
	assert.NotEqual(t, captured[1], captured[5])

	// A trained model now answers single-user predictions
	transactionRepo.EXPECT().ListByUser(7).Return(nil, nil)
	clusterRepo.EXPECT().SetUserCluster(7, gomock.Any()).Return(nil)

	clusterIndex, err := service.Predict(7)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, clusterIndex, 0)
	assert.Less(t, clusterIndex, 4)
}

func TestTrainDoesNotPersistModelWhenAssignmentsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().ListCustomers().Return([]*domain.User{customer(1), customer(2)}, nil)

	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	transactionRepo.EXPECT().ListByUser(1).Return(spendingHistory(10, 50), nil)
	transactionRepo.EXPECT().ListByUser(2).Return(nil, nil)

	clusterRepo := mocks.NewMockClusterRepository(ctrl)
	clusterRepo.EXPECT().
		ReplaceAssignments(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assertableError{})

	store := newTestStore(t)
	service := NewService(userRepo, transactionRepo, clusterRepo, store)

	_, err := service.Train(context.Background())
	assert.ErrorIs(t, err, ErrAssignmentUpdate)

	// The failed run must not have overwritten the model artifact
	clusterIndex, err := service.Predict(1)
	require.NoError(t, err)
	assert.Equal(t, DefaultClusterIndex, clusterIndex)
}

func TestDescribeKnownAndUnknownClusters(t *testing.T) {
	service := &Service{}

	frugal := service.Describe(0)
	assert.Equal(t, "Frugal Savers", frugal.Name)
	assert.NotEmpty(t, frugal.Description)

	newUsers := service.Describe(3)
	assert.Equal(t, "New/Infrequent Users", newUsers.Name)

	unknown := service.Describe(99)
	assert.Equal(t, "Unknown", unknown.Name)
}

type assertableError struct{}

func (assertableError) Error() string { return "deadlock detected" }
