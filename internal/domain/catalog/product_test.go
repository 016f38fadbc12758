package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	p, err := NewProduct("vt-001", "Organic Cotton Tee", "organic-cotton-tee", decimal.NewFromFloat(29.90))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with defaults", func(t *testing.T) {
		p := newTestProduct(t)

		assert.Equal(t, "VT-001", p.SKU)
		assert.Equal(t, "organic-cotton-tee", p.Slug)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, "[]", p.GalleryURLs)
		assert.Equal(t, "{}", p.EcoAttributes)
		assert.False(t, p.OnSale())
	})

	tests := []struct {
		name  string
		sku   string
		pname string
		slug  string
		price decimal.Decimal
	}{
		{"empty sku", "", "Tee", "tee", decimal.NewFromInt(1)},
		{"sku with spaces", "VT 1", "Tee", "tee", decimal.NewFromInt(1)},
		{"empty name", "VT-1", "", "tee", decimal.NewFromInt(1)},
		{"empty slug", "VT-1", "Tee", "", decimal.NewFromInt(1)},
		{"slug with slash", "VT-1", "Tee", "a/b", decimal.NewFromInt(1)},
		{"negative price", "VT-1", "Tee", "tee", decimal.NewFromInt(-1)},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.sku, tt.pname, tt.slug, tt.price)
			assert.Error(t, err)
		})
	}
}

func TestProduct_SetPrice(t *testing.T) {
	p := newTestProduct(t)

	t.Run("compare-at above price marks sale", func(t *testing.T) {
		require.NoError(t, p.SetPrice(decimal.NewFromInt(25), decimal.NewFromInt(35)))
		assert.True(t, p.OnSale())
	})

	t.Run("zero compare-at clears sale", func(t *testing.T) {
		require.NoError(t, p.SetPrice(decimal.NewFromInt(25), decimal.Zero))
		assert.False(t, p.OnSale())
	})

	t.Run("compare-at below price rejected", func(t *testing.T) {
		assert.Error(t, p.SetPrice(decimal.NewFromInt(25), decimal.NewFromInt(20)))
	})

	t.Run("negative price rejected", func(t *testing.T) {
		assert.Error(t, p.SetPrice(decimal.NewFromInt(-1), decimal.Zero))
	})
}

func TestProduct_StatusTransitions(t *testing.T) {
	p := newTestProduct(t)

	assert.Error(t, p.Activate()) // already active
	require.NoError(t, p.Deactivate())
	require.NoError(t, p.Activate())
	require.NoError(t, p.Discontinue())

	assert.Error(t, p.Activate())
	assert.Error(t, p.Deactivate())
	assert.Error(t, p.Discontinue())
}

func TestProduct_SetStock(t *testing.T) {
	p := newTestProduct(t)

	assert.False(t, p.InStock())
	require.NoError(t, p.SetStock(12))
	assert.True(t, p.InStock())
	assert.Error(t, p.SetStock(-1))
}

func TestProduct_JSONFields(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.SetEcoAttributes(`{"materials":["organic cotton"]}`))
	assert.Error(t, p.SetEcoAttributes("not json"))

	require.NoError(t, p.SetGallery(`["https://cdn/x.jpg"]`))
	assert.Error(t, p.SetGallery("{}"))

	require.NoError(t, p.SetEcoAttributes(""))
	assert.Equal(t, "{}", p.EcoAttributes)
}

func TestCategoryAndBrand(t *testing.T) {
	t.Run("category slug lowercased", func(t *testing.T) {
		c, err := NewCategory("Outerwear", "OuterWear")
		require.NoError(t, err)
		assert.Equal(t, "outerwear", c.Slug)
	})

	t.Run("category activation toggling", func(t *testing.T) {
		c, err := NewCategory("Denim", "denim")
		require.NoError(t, err)
		assert.Error(t, c.Activate())
		require.NoError(t, c.Deactivate())
		require.NoError(t, c.Activate())
	})

	t.Run("brand requires valid slug", func(t *testing.T) {
		_, err := NewBrand("Good Brand", "good brand")
		assert.Error(t, err)
	})

	t.Run("brand update", func(t *testing.T) {
		b, err := NewBrand("Loomi", "loomi")
		require.NoError(t, err)
		require.NoError(t, b.Update("Loomi", "desc", "https://cdn/logo.png", "GOTS certified"))
		assert.Equal(t, "GOTS certified", b.Sustainability)
	})
}
