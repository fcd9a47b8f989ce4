package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type typed struct {
	Kind AccountType `validate:"accountType"`
	Name string      `validate:"required"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(typed{Kind: AccountTypeRevenue, Name: "Fares"}))

	err := Validate(typed{Kind: "drawing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "typed.Kind")
	assert.Contains(t, err.Error(), "typed.Name")
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, Validate(JournalLine{AccountID: "1-1-1", Type: Debit}))

	err := Validate(JournalLine{Type: "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccountID")
	assert.Contains(t, err.Error(), `"lineType"`)
}
