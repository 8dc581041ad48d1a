package apicontract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/inventory-management/api-contract"
)

func TestContract(t *testing.T) {
	doc, err := apicontract.Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/categories",
		"/products",
		"/products/purchases",
		"/products/purchase",
		"/products/purchase/{id}",
		"/orders",
		"/orders/{id}",
		"/orders/{id}/send",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}
