package cart

import (
	"fmt"
	"math/rand"
	"testing"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(name, price, qty string) ItemInput {
	return ItemInput{Name: name, Price: price, Quantity: qty}
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code(), "error: %v", err)
}

func requireDense(t *testing.T, s *Store) {
	t.Helper()
	items := s.Items()
	for i, item := range items {
		require.Equal(t, i+1, item.Number, "items: %+v", items)
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore()

	pen, err := s.Add(input("  Pen ", " 1.50", "10 "))
	require.NoError(t, err)
	assert.Equal(t, 1, pen.Number)
	assert.Equal(t, "Pen", pen.Name)
	assert.True(t, decimal.RequireFromString("1.5").Equal(pen.UnitPrice))
	assert.Equal(t, 10, pen.Quantity)
	assert.Equal(t, "15.00", pen.LineTotal().StringFixed(2))

	book, err := s.Add(input("Notebook", "3.00", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, book.Number)
	assert.Equal(t, "21.00", s.Total().StringFixed(2))
	assert.Equal(t, 2, s.Len())
}

func TestStore_AddIncreasesTotalByLineTotal(t *testing.T) {
	s := NewStore()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		cents := rng.Intn(100000)
		qty := rng.Intn(100)
		price := decimal.New(int64(cents), -2)
		before := s.Total()

		_, err := s.Add(input(fmt.Sprintf("item-%d", i), price.String(), fmt.Sprint(qty)))
		require.NoError(t, err)

		want := before.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		require.True(t, want.Equal(s.Total()), "want %s got %s", want, s.Total())
	}
}

func TestStore_AddValidation(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name string
		in   ItemInput
		code pkgerrors.Code
	}{
		{name: "empty name", in: input("   ", "1", "1"), code: pkgerrors.CodeValidation},
		{name: "empty price", in: input("Pen", "", "1"), code: pkgerrors.CodeValidation},
		{name: "empty quantity", in: input("Pen", "1", " "), code: pkgerrors.CodeValidation},
		{name: "non numeric price", in: input("Pen", "abc", "1"), code: pkgerrors.CodeParse},
		{name: "non numeric quantity", in: input("Pen", "1", "two"), code: pkgerrors.CodeParse},
		{name: "fractional quantity", in: input("Pen", "1", "1.5"), code: pkgerrors.CodeParse},
		{name: "negative price", in: input("Pen", "-1", "1"), code: pkgerrors.CodeValidation},
		{name: "negative quantity", in: input("Pen", "1", "-3"), code: pkgerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(tt.in)
			requireCode(t, err, tt.code)
			assert.Equal(t, 0, s.Len())
		})
	}

	item, err := s.Add(input("Pen", "1", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, item.Number, "failed adds must not consume numbers")
}

func TestStore_AddDuplicateName(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1.50", "10"))
	require.NoError(t, err)

	for _, in := range []ItemInput{
		input("Pen", "9.99", "1"),
		input("Pen", "0", "0"),
		input(" Pen ", "1.50", "10"),
	} {
		_, err := s.Add(in)
		requireCode(t, err, pkgerrors.CodeDuplicateName)
	}

	_, err = s.Add(input("pen", "1", "1"))
	require.NoError(t, err, "name match is case-sensitive")
	assert.Equal(t, 2, s.Len())
}

func TestStore_Update(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1.50", "10"))
	require.NoError(t, err)
	_, err = s.Add(input("Notebook", "3.00", "2"))
	require.NoError(t, err)

	updated, err := s.Update(1, input("Pen", "1.50", "4"))
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Number)
	assert.Equal(t, "Pen", updated.Name)
	assert.Equal(t, "6.00", updated.LineTotal().StringFixed(2))
	assert.Equal(t, "12.00", s.Total().StringFixed(2))

	renamed, err := s.Update(2, input("Binder", "3.00", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, renamed.Number)
	assert.False(t, s.HasName("Notebook"))
}

func TestStore_UpdateErrors(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1.50", "10"))
	require.NoError(t, err)
	_, err = s.Add(input("Notebook", "3.00", "2"))
	require.NoError(t, err)

	_, err = s.Update(9, input("Pen", "1", "1"))
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = s.Update(2, input("Pen", "1", "1"))
	requireCode(t, err, pkgerrors.CodeDuplicateName)

	_, err = s.Update(2, input("Notebook", "x", "1"))
	requireCode(t, err, pkgerrors.CodeParse)

	_, err = s.Update(2, input("", "1", "1"))
	requireCode(t, err, pkgerrors.CodeValidation)

	item, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Notebook", item.Name)
	assert.Equal(t, 2, item.Quantity)
}

func TestStore_DeleteRenumbers(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := s.Add(input(name, "1", "1"))
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(2))
	requireDense(t, s)

	names := []string{}
	for _, item := range s.Items() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"A", "C", "D"}, names)

	added, err := s.Add(input("E", "1", "1"))
	require.NoError(t, err)
	assert.Equal(t, 4, added.Number)
}

func TestStore_DeleteMissingLeavesCartUnchanged(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1.50", "10"))
	require.NoError(t, err)
	before := s.Items()

	requireCode(t, s.Delete(5), pkgerrors.CodeNotFound)
	requireCode(t, s.Delete(0), pkgerrors.CodeNotFound)
	assert.Equal(t, before, s.Items())
}

func TestStore_NumbersStayDenseUnderRandomOperations(t *testing.T) {
	s := NewStore()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		if s.Len() == 0 || rng.Intn(3) > 0 {
			_, err := s.Add(input(fmt.Sprintf("p%d", i), "1", "1"))
			require.NoError(t, err)
		} else {
			require.NoError(t, s.Delete(rng.Intn(s.Len())+1))
		}
		requireDense(t, s)
	}
}

func TestStore_ClearResetsNumbering(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1", "1"))
	require.NoError(t, err)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Total().IsZero())

	item, err := s.Add(input("Pen", "1", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, item.Number)
}

func TestStore_ReplaceRenumbersAndDropsDuplicates(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Old", "1", "1"))
	require.NoError(t, err)

	dropped := s.Replace([]Item{
		{Number: 7, Name: "Pen", UnitPrice: decimal.RequireFromString("1.50"), Quantity: 10},
		{Number: 3, Name: "Notebook", UnitPrice: decimal.RequireFromString("3.00"), Quantity: 2},
		{Number: 9, Name: "Pen", UnitPrice: decimal.RequireFromString("2.00"), Quantity: 1},
	})
	assert.Equal(t, 1, dropped)
	requireDense(t, s)
	assert.False(t, s.HasName("Old"))

	first, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Pen", first.Name)
	assert.Equal(t, "21.00", s.Total().StringFixed(2))

	next, err := s.Add(input("Eraser", "0.50", "1"))
	require.NoError(t, err)
	assert.Equal(t, 3, next.Number)
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := NewStore()
	_, err := s.Add(input("Pen", "1.50", "10"))
	require.NoError(t, err)
	snap := s.Snapshot()

	s.Clear()
	s.Restore(snap)
	assert.Equal(t, snap, s.Items())
}

func TestItem_String(t *testing.T) {
	item := Item{Number: 1, Name: "Pen", UnitPrice: decimal.RequireFromString("1.5"), Quantity: 10}
	assert.Equal(t, "Item Number: 1 | Name: Pen | Price: $1.50 | Quantity: 10", item.String())
}
