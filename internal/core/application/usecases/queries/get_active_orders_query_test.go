package queries_test

import (
	"testing"

	"afrimercato/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
)

func TestGetActiveOrdersQuery_Validate(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()
	assert.NoError(t, query.Validate())

	var zero queries.GetActiveOrdersQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
