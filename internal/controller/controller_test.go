package controller_test

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jdupreez/trolley/internal/controller"
	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
	"github.com/jdupreez/trolley/internal/sorting"
)

type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) Create(ctx context.Context, userID int64, name string) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) GetByUserID(ctx context.Context, userID int64) ([]models.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) Rename(ctx context.Context, id int64, name string) (*models.ShoppingList, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.ShoppingListItem) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingListItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, id int64, patch repository.ItemPatch) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingListItem), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Search(ctx context.Context, userID int64, query string) ([]models.ShoppingListItem, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShoppingListItem), args.Error(1)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testUser() models.User {
	return models.User{ID: 7, Name: "Jan", Surname: "du Preez", Email: "jan@example.com"}
}

// newLoaded creates a controller whose store already holds the given
// lists, as after a successful fetch.
func newLoaded(t *testing.T, lists []models.ShoppingList, listRepo *MockShoppingListRepository, itemRepo *MockItemRepository, opts ...controller.Option) *controller.Controller {
	t.Helper()
	ctrl := controller.New(testUser(), listRepo, itemRepo, quietLogger(), opts...)
	listRepo.On("GetByUserID", mock.Anything, int64(7)).Return(lists, nil).Once()
	require.NoError(t, ctrl.LoadLists(context.Background()))
	return ctrl
}

func groceries() []models.ShoppingList {
	return []models.ShoppingList{{
		ID: 1, UserID: 7, Name: "Groceries",
		Items: []models.ShoppingListItem{
			{ID: 10, Name: "Milk", Quantity: 2, Category: "Dairy", ShoppingListID: 1},
			{ID: 11, Name: "Bread", Quantity: 1, Category: "Bakery", ShoppingListID: 1},
		},
	}}
}

func TestLoadListsFailureSetsErrorAndStopsLoading(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := controller.New(testUser(), listRepo, itemRepo, quietLogger())

	listRepo.On("GetByUserID", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	err := ctrl.LoadLists(context.Background())

	require.Error(t, err)
	assert.False(t, ctrl.Loading())
	assert.Equal(t, "Failed to fetch shopping lists.", ctrl.Err())
	assert.Empty(t, ctrl.Lists())
}

func TestCreateListAppearsExactlyOnce(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, []models.ShoppingList{}, listRepo, itemRepo)

	listRepo.On("Create", mock.Anything, int64(7), "Hardware").
		Return(&models.ShoppingList{ID: 2, UserID: 7, Name: "Hardware"}, nil).Once()

	list, err := ctrl.CreateList(context.Background(), "  Hardware  ")

	require.NoError(t, err)
	require.NotNil(t, list)
	assert.NotNil(t, list.Items)

	lists := ctrl.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "Hardware", lists[0].Name)
	listRepo.AssertExpectations(t)
}

func TestCreateListBlankNameIssuesNoCall(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, []models.ShoppingList{}, listRepo, itemRepo)

	list, err := ctrl.CreateList(context.Background(), "   ")

	require.NoError(t, err)
	assert.Nil(t, list)
	listRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRenameUnchangedNameIssuesNoCall(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	require.True(t, ctrl.BeginRename(1))
	ctrl.SetRenameDraft("Groceries")
	require.NoError(t, ctrl.SubmitRename(context.Background()))

	_, active := ctrl.Renaming()
	assert.False(t, active)
	listRepo.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRenameUpdatesStore(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	listRepo.On("Rename", mock.Anything, int64(1), "Weekly shop").
		Return(&models.ShoppingList{ID: 1, UserID: 7, Name: "Weekly shop"}, nil).Once()

	require.True(t, ctrl.BeginRename(1))
	ctrl.SetRenameDraft("Weekly shop")
	require.NoError(t, ctrl.SubmitRename(context.Background()))

	list, ok := ctrl.ListByID(1)
	require.True(t, ok)
	assert.Equal(t, "Weekly shop", list.Name)
	// items survive the rename untouched
	assert.Len(t, list.Items, 2)
	listRepo.AssertExpectations(t)
}

func TestBeginRenameReplacesPreviousRename(t *testing.T) {
	lists := append(groceries(), models.ShoppingList{ID: 2, UserID: 7, Name: "Hardware"})
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, lists, listRepo, itemRepo)

	require.True(t, ctrl.BeginRename(1))
	ctrl.SetRenameDraft("half-typed")
	require.True(t, ctrl.BeginRename(2))

	draft, active := ctrl.Renaming()
	require.True(t, active)
	assert.Equal(t, int64(2), draft.ListID)
	assert.Equal(t, "Hardware", draft.Name)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	require.True(t, ctrl.RequestDeleteList(1))

	// requesting alone deletes nothing
	assert.Len(t, ctrl.Lists(), 1)
	listRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	target, pending := ctrl.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, controller.DeleteKindList, target.Kind)
	assert.Equal(t, "Groceries", target.Name)
}

func TestCancelDeleteIssuesNoCall(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	require.True(t, ctrl.RequestDeleteList(1))
	ctrl.CancelDelete()

	_, pending := ctrl.PendingDelete()
	assert.False(t, pending)
	assert.Len(t, ctrl.Lists(), 1)
	listRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	// confirming after a cancel is a no-op too
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))
	listRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestConfirmDeleteListRemovesListAndItems(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	listRepo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

	require.True(t, ctrl.RequestDeleteList(1))
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))

	assert.Empty(t, ctrl.Lists())
	_, pending := ctrl.PendingDelete()
	assert.False(t, pending)
	listRepo.AssertExpectations(t)
}

func TestConfirmDeleteItemRemovesOnlyThatItem(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Delete", mock.Anything, int64(10)).Return(nil).Once()

	require.True(t, ctrl.RequestDeleteItem(1, 10))
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))

	items := ctrl.ListItems(1)
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].Name)
	itemRepo.AssertExpectations(t)
}

func TestSecondDeleteRequestReplacesFirst(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Delete", mock.Anything, int64(11)).Return(nil).Once()

	require.True(t, ctrl.RequestDeleteItem(1, 10))
	require.True(t, ctrl.RequestDeleteItem(1, 11))
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))

	items := ctrl.ListItems(1)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
	itemRepo.AssertNotCalled(t, "Delete", mock.Anything, int64(10))
}

func TestConfirmDeleteFailureKeepsStoreIntact(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	listRepo.On("Delete", mock.Anything, int64(1)).Return(errors.New("500")).Once()

	require.True(t, ctrl.RequestDeleteList(1))
	require.Error(t, ctrl.ConfirmDelete(context.Background()))

	// dialog closes either way, but the list stays
	_, pending := ctrl.PendingDelete()
	assert.False(t, pending)
	assert.Len(t, ctrl.Lists(), 1)
}

func TestDraftDefaultsQuantityToOne(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	assert.Equal(t, controller.ItemDraft{Quantity: 1}, ctrl.Draft(1))
}

func TestSubmitDraftBlankNameIsNoOp(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	ctrl.SetDraft(1, controller.ItemDraft{Name: "  ", Quantity: 3})
	assert.False(t, ctrl.CanSubmitDraft(1))

	item, err := ctrl.SubmitDraft(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, item)
	itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitDraftRejectsInvalidImageURL(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	ctrl.SetDraft(1, controller.ItemDraft{Name: "Cheese", Quantity: 1, Image: "ftp://host/pic.jpg"})
	assert.False(t, ctrl.CanSubmitDraft(1))

	_, err := ctrl.SubmitDraft(context.Background(), 1)
	assert.ErrorIs(t, err, controller.ErrInvalidImageURL)
	itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitDraftAppendsItemAndResetsDraft(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Create", mock.Anything, mock.MatchedBy(func(item *models.ShoppingListItem) bool {
		return item.Name == "Cheese" && item.Quantity == 1 && item.ShoppingListID == 1 && !item.DateAdded.IsZero()
	})).Return(&models.ShoppingListItem{ID: 12, Name: "Cheese", Quantity: 1, Category: "Dairy", ShoppingListID: 1}, nil).Once()

	ctrl.SetDraft(1, controller.ItemDraft{Name: "Cheese", Quantity: 0, Category: "Dairy"})
	item, err := ctrl.SubmitDraft(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Len(t, ctrl.ListItems(1), 3)
	assert.Equal(t, controller.ItemDraft{Quantity: 1}, ctrl.Draft(1))
	itemRepo.AssertExpectations(t)
}

func TestDraftsAreIndependentPerList(t *testing.T) {
	lists := append(groceries(), models.ShoppingList{ID: 2, UserID: 7, Name: "Hardware"})
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, lists, listRepo, itemRepo)

	ctrl.SetDraft(1, controller.ItemDraft{Name: "Cheese", Quantity: 2})
	ctrl.SetDraft(2, controller.ItemDraft{Name: "Screws", Quantity: 50})

	assert.Equal(t, "Cheese", ctrl.Draft(1).Name)
	assert.Equal(t, "Screws", ctrl.Draft(2).Name)
}

func TestStartEditSeedsDraftFromItem(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	require.True(t, ctrl.StartEdit(1, 10))

	edit, active := ctrl.Editing()
	require.True(t, active)
	assert.Equal(t, int64(10), edit.ItemID)
	assert.Equal(t, controller.ItemDraft{Name: "Milk", Quantity: 2, Category: "Dairy"}, edit.Draft)
}

func TestStartEditAbandonsPreviousDraft(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	require.True(t, ctrl.StartEdit(1, 10))
	ctrl.SetEditDraft(controller.ItemDraft{Name: "Oat milk", Quantity: 2, Category: "Dairy"})
	require.True(t, ctrl.StartEdit(1, 11))

	edit, active := ctrl.Editing()
	require.True(t, active)
	assert.Equal(t, int64(11), edit.ItemID)
	assert.Equal(t, "Bread", edit.Draft.Name)
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveEditPatchesAllFieldsAndUpdatesStore(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	updated := &models.ShoppingListItem{ID: 10, Name: "Oat milk", Quantity: 3, Category: "Dairy", Notes: "barista", ShoppingListID: 1}
	itemRepo.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(patch repository.ItemPatch) bool {
		return patch.Name != nil && *patch.Name == "Oat milk" &&
			patch.Quantity != nil && *patch.Quantity == 3 &&
			patch.Notes != nil && *patch.Notes == "barista"
	})).Return(updated, nil).Once()

	require.True(t, ctrl.StartEdit(1, 10))
	ctrl.SetEditDraft(controller.ItemDraft{Name: "Oat milk", Quantity: 3, Category: "Dairy", Notes: "barista"})
	got, err := ctrl.SaveEdit(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	_, active := ctrl.Editing()
	assert.False(t, active)

	item, ok := ctrl.FindItem(10)
	require.True(t, ok)
	assert.Equal(t, "Oat milk", item.Name)
	assert.Equal(t, 3, item.Quantity)
	itemRepo.AssertExpectations(t)
}

func TestSaveEditFailureKeepsEditOpen(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Update", mock.Anything, int64(10), mock.Anything).
		Return(nil, errors.New("500")).Once()

	require.True(t, ctrl.StartEdit(1, 10))
	ctrl.SetEditDraft(controller.ItemDraft{Name: "Oat milk", Quantity: 2})
	_, err := ctrl.SaveEdit(context.Background())

	require.Error(t, err)
	_, active := ctrl.Editing()
	assert.True(t, active)

	item, ok := ctrl.FindItem(10)
	require.True(t, ok)
	assert.Equal(t, "Milk", item.Name)
}

func TestSetSearchQueryDebouncesAndOnlyLastQueryFires(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo, controller.WithDebounce(30*time.Millisecond))

	itemRepo.On("Search", mock.Anything, int64(7), "milk").
		Return([]models.ShoppingListItem{{ID: 10, Name: "Milk", ShoppingListID: 1}}, nil).Once()

	ctrl.SetSearchQuery("m")
	ctrl.SetSearchQuery("mi")
	ctrl.SetSearchQuery("milk")

	require.Eventually(t, ctrl.Searching, time.Second, 5*time.Millisecond)
	results := ctrl.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "Milk", results[0].Name)
	itemRepo.AssertNotCalled(t, "Search", mock.Anything, int64(7), "m")
	itemRepo.AssertNotCalled(t, "Search", mock.Anything, int64(7), "mi")
}

func TestBlankQueryClearsSearchModeImmediately(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo, controller.WithDebounce(time.Millisecond))

	itemRepo.On("Search", mock.Anything, int64(7), "milk").
		Return([]models.ShoppingListItem{{ID: 10, Name: "Milk", ShoppingListID: 1}}, nil)

	require.NoError(t, ctrl.SearchNow(context.Background(), "milk"))
	require.True(t, ctrl.Searching())

	ctrl.SetSearchQuery("")
	assert.False(t, ctrl.Searching())
	assert.Nil(t, ctrl.SearchResults())
}

func TestEmptyResultsStaysInSearchMode(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Search", mock.Anything, int64(7), "zzz").
		Return([]models.ShoppingListItem{}, nil).Once()

	require.NoError(t, ctrl.SearchNow(context.Background(), "zzz"))

	assert.True(t, ctrl.Searching())
	assert.Empty(t, ctrl.SearchResults())
}

// blockingItemRepo lets a test hold a search response until released,
// simulating a slow request overtaken by a newer one.
type blockingItemRepo struct {
	MockItemRepository
	mu      sync.Mutex
	waiting map[string]chan struct{}
}

func newBlockingItemRepo() *blockingItemRepo {
	return &blockingItemRepo{waiting: make(map[string]chan struct{})}
}

func (r *blockingItemRepo) hold(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiting[query] = make(chan struct{})
}

func (r *blockingItemRepo) release(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.waiting[query]; ok {
		close(ch)
		delete(r.waiting, query)
	}
}

func (r *blockingItemRepo) Search(ctx context.Context, userID int64, query string) ([]models.ShoppingListItem, error) {
	r.mu.Lock()
	ch := r.waiting[query]
	r.mu.Unlock()
	if ch != nil {
		<-ch
	}
	return r.MockItemRepository.Search(ctx, userID, query)
}

func TestStaleSearchResponseIsDiscarded(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := newBlockingItemRepo()
	ctrl := controller.New(testUser(), listRepo, itemRepo, quietLogger())

	itemRepo.On("Search", mock.Anything, int64(7), "milk").
		Return([]models.ShoppingListItem{{ID: 10, Name: "Milk", ShoppingListID: 1}}, nil)
	itemRepo.On("Search", mock.Anything, int64(7), "bread").
		Return([]models.ShoppingListItem{{ID: 11, Name: "Bread", ShoppingListID: 1}}, nil)

	itemRepo.hold("milk")

	done := make(chan error, 1)
	go func() { done <- ctrl.SearchNow(context.Background(), "milk") }()

	// the newer query lands while the first is still in flight
	require.NoError(t, ctrl.SearchNow(context.Background(), "bread"))
	itemRepo.release("milk")
	require.NoError(t, <-done)

	results := ctrl.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "Bread", results[0].Name)
}

func TestConfirmDeleteItemDropsItFromSearchResults(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Search", mock.Anything, int64(7), "a").
		Return([]models.ShoppingListItem{
			{ID: 10, Name: "Milk", ShoppingListID: 1},
			{ID: 11, Name: "Bread", ShoppingListID: 1},
		}, nil).Once()
	itemRepo.On("Delete", mock.Anything, int64(10)).Return(nil).Once()

	require.NoError(t, ctrl.SearchNow(context.Background(), "a"))
	require.True(t, ctrl.RequestDeleteItem(1, 10))
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))

	results := ctrl.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "Bread", results[0].Name)
}

func TestSortKeyOrdersListItems(t *testing.T) {
	lists := []models.ShoppingList{{
		ID: 1, UserID: 7, Name: "Groceries",
		Items: []models.ShoppingListItem{
			{ID: 10, Name: "banana", ShoppingListID: 1, DateAdded: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 11, Name: "Apple", ShoppingListID: 1, DateAdded: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
		},
	}}
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, lists, listRepo, itemRepo)

	// default is newest first
	items := ctrl.ListItems(1)
	assert.Equal(t, "Apple", items[0].Name)

	ctrl.SetSortKey(sorting.KeyName)
	items = ctrl.ListItems(1)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "banana", items[1].Name)
}

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	assert.Empty(t, ctrl.EncodeQuery())

	itemRepo.On("Search", mock.Anything, int64(7), "milk").
		Return([]models.ShoppingListItem{}, nil).Once()
	require.NoError(t, ctrl.SearchNow(context.Background(), "milk"))
	ctrl.SetSortKey(sorting.KeyName)

	values := ctrl.EncodeQuery()
	assert.Equal(t, "milk", values.Get("search"))
	assert.Equal(t, "name", values.Get("sort"))
}

func TestApplyQueryRestoresSortAndSearch(t *testing.T) {
	listRepo := new(MockShoppingListRepository)
	itemRepo := new(MockItemRepository)
	ctrl := newLoaded(t, groceries(), listRepo, itemRepo)

	itemRepo.On("Search", mock.Anything, int64(7), "milk").
		Return([]models.ShoppingListItem{{ID: 10, Name: "Milk", ShoppingListID: 1}}, nil).Once()

	values := url.Values{}
	values.Set("search", "milk")
	values.Set("sort", "category")
	require.NoError(t, ctrl.ApplyQuery(context.Background(), values))

	assert.Equal(t, sorting.KeyCategory, ctrl.SortKey())
	assert.True(t, ctrl.Searching())

	// an unknown sort value falls back to the default
	require.NoError(t, ctrl.ApplyQuery(context.Background(), url.Values{"sort": {"bogus"}}))
	assert.Equal(t, sorting.KeyDate, ctrl.SortKey())
}
