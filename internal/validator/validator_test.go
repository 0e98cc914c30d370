package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username string `json:"username" validate:"required,min=3"`
	UserType string `json:"userType" validate:"required,is-user-role"`
}

type jobForm struct {
	Category string `json:"category" validate:"required,is-job-category"`
	Budget   int    `json:"budget" validate:"gt=0"`
}

type amountForm struct {
	Amount float64 `json:"amount" validate:"gt=0,lte=99999999.99"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{Username: "ab", UserType: "admin"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "username")
	assert.Equal(t, "Must be one of: client, vendor", vErr.Errors["userType"])
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&signupForm{Username: "alice", UserType: "vendor"}))
	assert.NoError(t, v.Validate(&jobForm{Category: "Private Party", Budget: 500}))
	assert.Error(t, v.Validate(&jobForm{Category: "Funeral", Budget: 500}))
	assert.Error(t, v.Validate(&jobForm{Category: "Other", Budget: 0}))
}

func TestValidate_AmountFitsDecimalColumn(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&amountForm{Amount: 200}))
	assert.NoError(t, v.Validate(&amountForm{Amount: 99999999.99}))

	err := v.Validate(&amountForm{Amount: 1e9})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at most 99999999.99", vErr.Errors["amount"])

	assert.Error(t, v.Validate(&amountForm{Amount: 0}))
}
