package cart

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

type memoryStorage struct {
	lines   []Line
	saveErr error
	saves   int
}

func (m *memoryStorage) Save(lines []Line) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lines = append([]Line{}, lines...)
	return nil
}

func (m *memoryStorage) Load() ([]Line, error) {
	return m.lines, nil
}

func testLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard)
}

func TestStore_AddAccumulatesQuantity(t *testing.T) {
	s := NewStore(nil, testLogger())

	s.Add("algebra-notes", 1)
	s.Add("algebra-notes", 2)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_AddIgnoresNonPositiveQuantity(t *testing.T) {
	s := NewStore(nil, testLogger())

	s.Add("algebra-notes", 0)
	s.Add("algebra-notes", -5)

	assert.Empty(t, s.Items())
}

func TestStore_ItemsPreserveInsertionOrder(t *testing.T) {
	s := NewStore(nil, testLogger())

	s.Add("c-notes", 1)
	s.Add("a-notes", 1)
	s.Add("b-notes", 1)
	s.Add("a-notes", 1)

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "c-notes", items[0].ProductID)
	assert.Equal(t, "a-notes", items[1].ProductID)
	assert.Equal(t, "b-notes", items[2].ProductID)
}

func TestStore_SetQuantityFloorsAtOne(t *testing.T) {
	s := NewStore(nil, testLogger())
	s.Add("algebra-notes", 3)

	s.SetQuantity("algebra-notes", 0)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity, "quantity below 1 must leave the line untouched")

	s.SetQuantity("algebra-notes", -2)
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	s.SetQuantity("algebra-notes", 7)
	items = s.Items()
	assert.Equal(t, 7, items[0].Quantity)
}

func TestStore_SetQuantityUnknownProductIsNoOp(t *testing.T) {
	s := NewStore(nil, testLogger())

	s.SetQuantity("missing", 5)

	assert.Empty(t, s.Items())
}

func TestStore_RemoveDropsLine(t *testing.T) {
	s := NewStore(nil, testLogger())
	s.Add("a-notes", 1)
	s.Add("b-notes", 2)

	s.Remove("a-notes")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b-notes", items[0].ProductID)
}

func TestStore_Total(t *testing.T) {
	s := NewStore(nil, testLogger())
	s.Add("a-notes", 2)
	s.Add("b-notes", 1)

	prices := map[string]int64{"a-notes": 500, "b-notes": 1200}

	total, err := s.Total(func(id string) (int64, error) {
		price, ok := prices[id]
		if !ok {
			return 0, errors.New("unknown product")
		}
		return price, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2200), total)
}

func TestStore_TotalPropagatesPriceError(t *testing.T) {
	s := NewStore(nil, testLogger())
	s.Add("a-notes", 1)

	_, err := s.Total(func(string) (int64, error) {
		return 0, errors.New("price lookup failed")
	})

	assert.Error(t, err)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(nil, testLogger())
	s.Add("a-notes", 1)
	s.Add("b-notes", 2)

	s.Clear()

	assert.Empty(t, s.Items())
}

func TestStore_PersistsOnEveryMutation(t *testing.T) {
	storage := &memoryStorage{}
	s := NewStore(storage, testLogger())

	s.Add("a-notes", 1)
	s.SetQuantity("a-notes", 4)
	s.Remove("a-notes")

	assert.Equal(t, 3, storage.saves)
	assert.Empty(t, storage.lines)
}

func TestStore_SaveFailureKeepsInMemoryState(t *testing.T) {
	storage := &memoryStorage{saveErr: errors.New("disk full")}
	s := NewStore(storage, testLogger())

	s.Add("a-notes", 2)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_LoadsPersistedLines(t *testing.T) {
	storage := &memoryStorage{lines: []Line{
		{ProductID: "a-notes", Quantity: 2},
		{ProductID: "dropped", Quantity: 0},
	}}

	s := NewStore(storage, testLogger())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a-notes", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_NotifiesSubscribers(t *testing.T) {
	s := NewStore(nil, testLogger())

	var calls int
	s.Subscribe(func() { calls++ })

	s.Add("a-notes", 1)
	s.Remove("a-notes")

	assert.Equal(t, 2, calls)
}
