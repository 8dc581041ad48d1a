package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

type draft struct {
	Name   string            `validate:"required,notblank"`
	Status model.OrderStatus `validate:"enum"`
	Qty    float64           `validate:"gt=0"`
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var verrs govalidator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.True(t, validator.IsValidationError(err))

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = validator.ValidationErrorMessage(fe)
	}
	return out
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid draft", func(t *testing.T) {
		assert.NoError(t, v.Validate(draft{Name: "Flour", Status: model.OrderStatusProcessing, Qty: 1}))
	})

	t.Run("Should reject blank names, unknown statuses and zero quantity", func(t *testing.T) {
		err := v.Validate(draft{Name: "   ", Status: model.OrderStatus(9)})

		assert.Equal(t, map[string]string{
			"Name":   "must not be blank",
			"Status": "invalid enum value: Unknown",
			"Qty":    "must be greater than 0",
		}, fieldErrors(t, err))
	})
}
