package entities

import (
	"testing"
	"time"

	pkgerrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("lowercases the category", func(t *testing.T) {
		p, err := NewProduct("MacBook", "Laptop", 999, 5, "photo.jpg")
		require.NoError(t, err)

		assert.Equal(t, "laptop", p.Category)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("rejects missing fields and negative amounts", func(t *testing.T) {
		cases := []struct {
			name     string
			category string
			price    float64
			stock    int
		}{
			{"", "laptop", 10, 1},
			{"MacBook", "", 10, 1},
			{"MacBook", "laptop", -1, 1},
			{"MacBook", "laptop", 10, -1},
		}
		for _, tc := range cases {
			_, err := NewProduct(tc.name, tc.category, tc.price, tc.stock, "")
			assert.True(t, pkgerrors.IsValidation(err))
		}
	})
}

func TestReduceStock(t *testing.T) {
	t.Run("decrements stock", func(t *testing.T) {
		p := &Product{ID: "p1", Stock: 5}
		require.NoError(t, p.ReduceStock(3))
		assert.Equal(t, 2, p.Stock)
		assert.False(t, p.OutOfStock())
	})

	t.Run("can drain stock to zero", func(t *testing.T) {
		p := &Product{ID: "p1", Stock: 2}
		require.NoError(t, p.ReduceStock(2))
		assert.True(t, p.OutOfStock())
	})

	t.Run("insufficient stock is a conflict", func(t *testing.T) {
		p := &Product{ID: "p1", Stock: 1}
		err := p.ReduceStock(2)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
		assert.Equal(t, 1, p.Stock)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		p := &Product{ID: "p1", Stock: 1}
		assert.True(t, pkgerrors.IsValidation(p.ReduceStock(0)))
	})
}

func TestOrderLifecycle(t *testing.T) {
	items := []OrderItem{{ProductID: "p1", Quantity: 1}}

	t.Run("new orders start processing", func(t *testing.T) {
		o, err := NewOrder("u1", items, ShippingInfo{}, 100, 5, 10, 0, 115)
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, o.Status)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("advance walks processing to delivered and stops", func(t *testing.T) {
		o := &Order{Status: StatusProcessing}

		o.Advance()
		assert.Equal(t, StatusShipped, o.Status)
		o.Advance()
		assert.Equal(t, StatusDelivered, o.Status)
		o.Advance()
		assert.Equal(t, StatusDelivered, o.Status)
	})

	t.Run("rejects empty user and empty items", func(t *testing.T) {
		_, err := NewOrder("", items, ShippingInfo{}, 0, 0, 0, 0, 0)
		assert.True(t, pkgerrors.IsValidation(err))

		_, err = NewOrder("u1", nil, ShippingInfo{}, 0, 0, 0, 0, 0)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("product ids are deduplicated", func(t *testing.T) {
		o := &Order{Items: []OrderItem{
			{ProductID: "p1"}, {ProductID: "p2"}, {ProductID: "p1"},
		}}
		assert.Equal(t, []string{"p1", "p2"}, o.ProductIDs())
	})
}

func TestUserAge(t *testing.T) {
	dob := time.Date(2001, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("counts whole years only", func(t *testing.T) {
		u := &User{DOB: dob}

		assert.Equal(t, 25, u.AgeAt(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 25, u.AgeAt(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 24, u.AgeAt(time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("never negative", func(t *testing.T) {
		u := &User{DOB: dob}
		assert.Equal(t, 0, u.AgeAt(time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestNewUser(t *testing.T) {
	t.Run("defaults to the customer role", func(t *testing.T) {
		u, err := NewUser("u1", "Asha", "asha@example.com", "", GenderFemale, time.Now())
		require.NoError(t, err)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("requires id, name and email", func(t *testing.T) {
		_, err := NewUser("", "Asha", "asha@example.com", "", GenderFemale, time.Time{})
		assert.True(t, pkgerrors.IsValidation(err))
		_, err = NewUser("u1", "", "asha@example.com", "", GenderFemale, time.Time{})
		assert.True(t, pkgerrors.IsValidation(err))
		_, err = NewUser("u1", "Asha", "", "", GenderFemale, time.Time{})
		assert.True(t, pkgerrors.IsValidation(err))
	})
}
