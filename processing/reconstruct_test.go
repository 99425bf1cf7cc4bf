package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumiere/api/models"
)

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string   { return &v }

func TestReconstructGroup(t *testing.T) {
	t.Run("explicit assignment event wins over everything", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{
			GroupFromEvent:          intPtr(1),
			HasAREvents:             true,
			HasHighVarietyExclusive: true,
		})

		require.NotNil(t, r.Group)
		assert.Equal(t, 1, *r.Group)
		assert.Equal(t, MethodExplicitEvent, r.Method)
		assert.Equal(t, 1.0, r.Confidence)
	})

	t.Run("AR plus exclusive product is group 4", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{
			HasAREvents:             true,
			HasHighVarietyExclusive: true,
			// Weak signals that lower-priority rules would act on must
			// not change the verdict.
			UniqueProductsViewed:   []int{1, 2, 3, 4, 5, 7, 8},
			ScrollTimeAfterGallery: f64Ptr(1.0),
		})

		require.NotNil(t, r.Group)
		assert.Equal(t, 4, *r.Group)
		assert.Equal(t, "ar_events + high_variety_products", r.Method)
		assert.Equal(t, 1.0, r.Confidence)
	})

	t.Run("AR without exclusive products is group 2", func(t *testing.T) {
		withProducts := ReconstructGroup(models.GroupSignals{
			HasAREvents:          true,
			UniqueProductsViewed: []int{1},
		})
		require.NotNil(t, withProducts.Group)
		assert.Equal(t, 2, *withProducts.Group)
		assert.Equal(t, MethodARNoExclusive, withProducts.Method)
		assert.Equal(t, 0.9, withProducts.Confidence)

		noProducts := ReconstructGroup(models.GroupSignals{HasAREvents: true})
		require.NotNil(t, noProducts.Group)
		assert.Equal(t, 2, *noProducts.Group)
		assert.Equal(t, 0.7, noProducts.Confidence)
	})

	t.Run("exclusive product without AR is group 3", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{
			HasHighVarietyExclusive:      true,
			HighVarietyExclusiveProducts: []int{3},
			UniqueProductsViewed:         []int{3},
		})

		require.NotNil(t, r.Group)
		assert.Equal(t, 3, *r.Group)
		assert.Equal(t, "high_variety_products + no_ar", r.Method)
		assert.Equal(t, 1.0, r.Confidence)
	})

	t.Run("browsing breadth implies high variety", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{
			UniqueProductsViewed: []int{1, 4, 6, 8, 10, 12},
		})

		require.NotNil(t, r.Group)
		assert.Equal(t, 3, *r.Group)
		assert.Equal(t, MethodProductCount, r.Method)
		assert.Equal(t, 0.8, r.Confidence)
	})

	t.Run("five products is not enough for the breadth rule", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{
			UniqueProductsViewed: []int{1, 6, 10, 11, 14},
		})
		assert.Equal(t, MethodInsufficient, r.Method)
	})

	t.Run("scroll timing fallback", func(t *testing.T) {
		fast := ReconstructGroup(models.GroupSignals{ScrollTimeAfterGallery: f64Ptr(2.9)})
		require.NotNil(t, fast.Group)
		assert.Equal(t, 1, *fast.Group)
		assert.Equal(t, MethodScrollFast, fast.Method)
		assert.Equal(t, 0.6, fast.Confidence)

		slow := ReconstructGroup(models.GroupSignals{ScrollTimeAfterGallery: f64Ptr(6.1)})
		require.NotNil(t, slow.Group)
		assert.Equal(t, 3, *slow.Group)
		assert.Equal(t, MethodScrollSlow, slow.Method)
		assert.Equal(t, 0.5, slow.Confidence)

		// The 3-6 second band is deliberately inconclusive.
		mid := ReconstructGroup(models.GroupSignals{ScrollTimeAfterGallery: f64Ptr(4.5)})
		assert.Nil(t, mid.Group)
		assert.Equal(t, MethodInsufficient, mid.Method)
	})

	t.Run("no signals at all", func(t *testing.T) {
		r := ReconstructGroup(models.GroupSignals{})

		assert.Nil(t, r.Group)
		assert.Equal(t, "insufficient_signals", r.Method)
		assert.Equal(t, 0.0, r.Confidence)
	})
}

func TestResolveGroup(t *testing.T) {
	t.Run("explicit label takes precedence", func(t *testing.T) {
		recon := models.Reconstruction{Group: intPtr(4), Method: MethodARWithExclusive, Confidence: 1.0}
		group, method, confidence := ResolveGroup(intPtr(1), recon)

		require.NotNil(t, group)
		assert.Equal(t, 1, *group)
		assert.Equal(t, MethodOriginal, method)
		assert.Equal(t, 1.0, confidence)
	})

	t.Run("cascade output fills the gap", func(t *testing.T) {
		recon := models.Reconstruction{Group: intPtr(2), Method: MethodARNoExclusive, Confidence: 0.9}
		group, method, confidence := ResolveGroup(nil, recon)

		require.NotNil(t, group)
		assert.Equal(t, 2, *group)
		assert.Equal(t, MethodARNoExclusive, method)
		assert.Equal(t, 0.9, confidence)
	})
}
