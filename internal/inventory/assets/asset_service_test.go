package assets

import (
	"errors"
	"testing"
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/auditlog"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetAssetByCode(code string) (*models.Asset, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetAssetList() ([]models.Asset, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetRepository) PersistAsset(tx *goqu.TxDatabase, asset *models.Asset) error {
	args := m.Called(tx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAssetState(tx *goqu.TxDatabase, asset *models.Asset, expected metadata.Status) error {
	args := m.Called(tx, asset, expected)
	return args.Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) PersistAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error {
	args := m.Called(tx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetOpenAssignment(assetID int) (*models.AssetAssignment, error) {
	args := m.Called(assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CloseAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error {
	args := m.Called(tx, assignment)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetCategory(categoryID int) (*models.AssetCategory, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetCategory), args.Error(1)
}

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Log(tx *goqu.TxDatabase, action string, item auditlog.Auditable, userID *int, details string) error {
	args := m.Called(tx, action, item, userID, details)
	return args.Error(0)
}

// stubTxRunner runs the unit of work directly against a nil tx so the
// repository mocks see the same handle the assertions use.
type stubTxRunner struct {
	err error
}

func (s *stubTxRunner) RunInTransaction(fn func(tx *goqu.TxDatabase) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type serviceMocks struct {
	assets      *MockAssetRepository
	assignments *MockAssignmentRepository
	categories  *MockCategoryRepository
	audit       *MockAuditSink
}

func newTestService() (*AssetService, serviceMocks) {
	m := serviceMocks{
		assets:      new(MockAssetRepository),
		assignments: new(MockAssignmentRepository),
		categories:  new(MockCategoryRepository),
		audit:       new(MockAuditSink),
	}
	service := NewAssetService(&stubTxRunner{}, m.assets, m.assignments, m.categories, m.audit)
	return service, m
}

func validCreateRequest() models.CreateAssetRequest {
	return models.CreateAssetRequest{
		AssetCode:    "LAP-100",
		Name:         "Dell Latitude 5440",
		CategoryID:   1,
		PurchaseDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Location:     "Warehouse A",
	}
}

func TestCreateAsset(t *testing.T) {
	actor := 7

	t.Run("creates asset and writes audit entry", func(t *testing.T) {
		service, m := newTestService()

		m.categories.On("GetCategory", 1).Return(&models.AssetCategory{ID: 1, Name: "Laptop"}, nil).Once()
		m.assets.On("GetAssetByCode", "LAP-100").Return(nil, nil).Once()
		m.assets.On("PersistAsset", mock.Anything, mock.AnythingOfType("*models.Asset")).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionCreate, mock.Anything, &actor, "Created asset LAP-100 (Dell Latitude 5440)").Return(nil).Once()

		asset, err := service.CreateAsset(validCreateRequest(), &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusInStock, asset.Status)
		assert.Nil(t, asset.AssignedToUserID)
		m.assets.AssertExpectations(t)
		m.audit.AssertExpectations(t)
	})

	t.Run("rejects duplicate asset code without persisting", func(t *testing.T) {
		service, m := newTestService()

		m.categories.On("GetCategory", 1).Return(&models.AssetCategory{ID: 1, Name: "Laptop"}, nil).Once()
		m.assets.On("GetAssetByCode", "LAP-100").Return(&models.Asset{ID: 9, AssetCode: "LAP-100"}, nil).Once()

		_, err := service.CreateAsset(validCreateRequest(), &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		m.assets.AssertNotCalled(t, "PersistAsset", mock.Anything, mock.Anything)
		m.audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects soft-deleted category", func(t *testing.T) {
		service, m := newTestService()

		deletedAt := time.Now()
		m.categories.On("GetCategory", 1).Return(&models.AssetCategory{ID: 1, Name: "Laptop", DeletedAt: &deletedAt}, nil).Once()

		_, err := service.CreateAsset(validCreateRequest(), &actor)

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
		m.assets.AssertNotCalled(t, "PersistAsset", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		service, m := newTestService()

		m.categories.On("GetCategory", 1).Return(nil, apperrors.NewNotFound("category", 1)).Once()

		_, err := service.CreateAsset(validCreateRequest(), &actor)

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.CreateAsset(models.CreateAssetRequest{}, &actor)

		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Len(t, validation.Fields, 4)
	})

	t.Run("audit failure rolls the operation back", func(t *testing.T) {
		service, m := newTestService()

		m.categories.On("GetCategory", 1).Return(&models.AssetCategory{ID: 1, Name: "Laptop"}, nil).Once()
		m.assets.On("GetAssetByCode", "LAP-100").Return(nil, nil).Once()
		m.assets.On("PersistAsset", mock.Anything, mock.Anything).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionCreate, mock.Anything, &actor, mock.Anything).Return(errors.New("audit insert failed")).Once()

		_, err := service.CreateAsset(validCreateRequest(), &actor)

		require.Error(t, err)
	})
}

func TestAssignAsset(t *testing.T) {
	actor := 1

	t.Run("assigns an in-stock asset", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Name: "Dell", Status: metadata.StatusInStock}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, asset, metadata.StatusInStock).Return(nil).Once()
		m.assignments.On("PersistAssignment", mock.Anything, mock.AnythingOfType("*models.AssetAssignment")).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionAssign, asset, &actor, "Assigned asset LAP-100 (Dell) to user 7. Status changed from in_stock to assigned.").Return(nil).Once()

		updated, err := service.AssignAsset(5, 7, &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusAssigned, updated.Status)
		require.NotNil(t, updated.AssignedToUserID)
		assert.Equal(t, 7, *updated.AssignedToUserID)
		m.assignments.AssertExpectations(t)
		m.audit.AssertExpectations(t)
	})

	t.Run("records the assignment window start", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Status: metadata.StatusInStock}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		m.audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		var recorded *models.AssetAssignment
		m.assignments.On("PersistAssignment", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AssetAssignment)
		}).Return(nil).Once()

		before := time.Now()
		_, err := service.AssignAsset(5, 7, &actor)
		after := time.Now()

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, 5, recorded.AssetID)
		assert.Equal(t, 7, recorded.UserID)
		assert.False(t, recorded.AssignedAt.Before(before))
		assert.False(t, recorded.AssignedAt.After(after))
		assert.Nil(t, recorded.ReturnedAt)
	})

	t.Run("conflicts when already assigned", func(t *testing.T) {
		service, m := newTestService()

		owner := 3
		asset := &models.Asset{ID: 5, Status: metadata.StatusAssigned, AssignedToUserID: &owner}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()

		_, err := service.AssignAsset(5, 7, &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Error(), "already assigned to another user")
		m.assets.AssertNotCalled(t, "UpdateAssetState", mock.Anything, mock.Anything, mock.Anything)
		m.assignments.AssertNotCalled(t, "PersistAssignment", mock.Anything, mock.Anything)
	})

	t.Run("conflicts when retired", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, Status: metadata.StatusRetired}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()

		_, err := service.AssignAsset(5, 7, &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Error(), "retired")
	})

	t.Run("not found bubbles up", func(t *testing.T) {
		service, m := newTestService()

		m.assets.On("GetAsset", 99).Return(nil, apperrors.NewNotFound("asset", 99)).Once()

		_, err := service.AssignAsset(99, 7, &actor)

		var notFound *apperrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("concurrent transition is rejected", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Status: metadata.StatusInStock}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, asset, metadata.StatusInStock).
			Return(apperrors.NewConflict("asset 'LAP-100' was modified concurrently: transition rejected")).Once()

		_, err := service.AssignAsset(5, 7, &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestReturnAsset(t *testing.T) {
	actor := 1

	t.Run("returns an assigned asset and closes its assignment", func(t *testing.T) {
		service, m := newTestService()

		owner := 7
		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Name: "Dell", Status: metadata.StatusAssigned, AssignedToUserID: &owner}
		assignedAt := time.Now().Add(-48 * time.Hour)
		open := &models.AssetAssignment{ID: 11, AssetID: 5, UserID: 7, AssignedAt: assignedAt}

		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assignments.On("GetOpenAssignment", 5).Return(open, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, asset, metadata.StatusAssigned).Return(nil).Once()
		m.assignments.On("CloseAssignment", mock.Anything, open).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionReturn, asset, &actor, "Returned asset LAP-100 (Dell). Status changed from assigned to in_stock.").Return(nil).Once()

		updated, err := service.ReturnAsset(5, &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusInStock, updated.Status)
		assert.Nil(t, updated.AssignedToUserID)
		require.NotNil(t, open.ReturnedAt)
		assert.False(t, open.ReturnedAt.Before(assignedAt))
		m.assignments.AssertExpectations(t)
	})

	t.Run("status is authoritative when no open assignment exists", func(t *testing.T) {
		service, m := newTestService()

		owner := 7
		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Status: metadata.StatusAssigned, AssignedToUserID: &owner}

		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assignments.On("GetOpenAssignment", 5).Return(nil, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, asset, metadata.StatusAssigned).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionReturn, asset, &actor, mock.Anything).Return(nil).Once()

		updated, err := service.ReturnAsset(5, &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusInStock, updated.Status)
		m.assignments.AssertNotCalled(t, "CloseAssignment", mock.Anything, mock.Anything)
	})

	t.Run("conflicts when not assigned", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, Status: metadata.StatusInStock}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()

		_, err := service.ReturnAsset(5, &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		m.assignments.AssertNotCalled(t, "GetOpenAssignment", mock.Anything)
	})
}

func TestChangeAssetStatus(t *testing.T) {
	actor := 1

	t.Run("moves an in-stock asset to maintenance", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, AssetCode: "LAP-100", Status: metadata.StatusInStock}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()
		m.assets.On("UpdateAssetState", mock.Anything, asset, metadata.StatusInStock).Return(nil).Once()
		m.audit.On("Log", mock.Anything, models.ActionUpdate, asset, &actor, "Status changed from in_stock to maintenance.").Return(nil).Once()

		updated, err := service.ChangeAssetStatus(5, metadata.StatusMaintenance, &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusMaintenance, updated.Status)
	})

	t.Run("same status is a no-op with no writes", func(t *testing.T) {
		service, m := newTestService()

		asset := &models.Asset{ID: 5, Status: metadata.StatusMaintenance}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()

		updated, err := service.ChangeAssetStatus(5, metadata.StatusMaintenance, &actor)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusMaintenance, updated.Status)
		m.assets.AssertNotCalled(t, "UpdateAssetState", mock.Anything, mock.Anything, mock.Anything)
		m.audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blocked while assigned", func(t *testing.T) {
		service, m := newTestService()

		owner := 7
		asset := &models.Asset{ID: 5, Status: metadata.StatusAssigned, AssignedToUserID: &owner}
		m.assets.On("GetAsset", 5).Return(asset, nil).Once()

		_, err := service.ChangeAssetStatus(5, metadata.StatusMaintenance, &actor)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Error(), "return it first")
	})
}
