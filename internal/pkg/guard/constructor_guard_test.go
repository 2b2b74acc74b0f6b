package guard_test

import (
	"errors"
	"sync"
	"testing"

	"afrimercato/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("vendor not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero value surfaces the caller's error", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("dispatch must be created via NewDispatch")

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value falls back to the package default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default error names the constructor rule", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor",
			guard.ErrDefaultConstructorGuard.Error())
	})
}

// The guard exists to catch aggregates built with a struct literal instead
// of their factory. This mirrors how the order and vendor models embed it.
func TestConstructorGuard_InDomainObject(t *testing.T) {
	var errStorefrontNotConstructed = errors.New("storefront must be created via newStorefront")

	type storefront struct {
		vendorID string
		zone     string
		guard    guard.ConstructorGuard
	}

	newStorefront := func(vendorID, zone string) (storefront, error) {
		if vendorID == "" {
			return storefront{}, errors.New("vendor id is required")
		}
		if zone == "" {
			return storefront{}, errors.New("delivery zone is required")
		}
		return storefront{
			vendorID: vendorID,
			zone:     zone,
			guard:    guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("factory-built value passes validation", func(t *testing.T) {
		s, err := newStorefront("vnd-001", "surulere")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errStorefrontNotConstructed))
		assert.Equal(t, "surulere", s.zone)
	})

	t.Run("struct-literal value is caught", func(t *testing.T) {
		s := storefront{vendorID: "vnd-002", zone: "ikeja"}

		err := s.guard.Validate(errStorefrontNotConstructed)

		assert.Equal(t, errStorefrontNotConstructed, err)
	})

	t.Run("factory still enforces its own rules first", func(t *testing.T) {
		_, err := newStorefront("", "ikeja")
		require.ErrorContains(t, err, "vendor id is required")

		_, err = newStorefront("vnd-003", "")
		require.ErrorContains(t, err, "delivery zone is required")
	})
}

func TestConstructorGuard_CopySemantics(t *testing.T) {
	g := guard.NewConstructorGuard()
	errCheck := errors.New("not constructed")

	// The guard travels by value with its aggregate; a copy must stay armed.
	clone := g

	require.NoError(t, g.Validate(errCheck))
	require.NoError(t, clone.Validate(errCheck))
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errCheck := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				assert.NoError(t, g.Validate(errCheck))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	errCheck := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(errCheck)
	}
}
