package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	Name  string `validate:"required,notblank"`
	Email string `validate:"required,notblank"`
}

type product struct {
	ID    string `validate:"required"`
	Price int64  `validate:"gte=0"`
	Stock int    `validate:"min=1,max=5"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(registration{Name: "Juan", Email: "juan@example.com"}))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(registration{Email: "juan@example.com"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_Blank(t *testing.T) {
	err := Validate(registration{Name: "Juan", Email: "   "})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must not be blank", valErr.Fields()["Email"])
}

func TestValidate_NegativePrice(t *testing.T) {
	err := Validate(product{ID: "ABC", Price: -1, Stock: 1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be greater than or equal to 0", valErr.Fields()["Price"])
}

func TestValidate_NumericMinMax(t *testing.T) {
	err := Validate(product{ID: "ABC", Stock: 9})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be at most 5", valErr.Fields()["Stock"])
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(registration{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Email")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(registration{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Name'")
	assert.Contains(t, err.Error(), "is required")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var(3, "gte=1,lte=100"))

	err := Var(0, "gte=1,lte=100")
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "greater than or equal to 1")

	assert.Error(t, Var(101, "gte=1,lte=100"))
}
