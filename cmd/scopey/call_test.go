package main

import (
	"testing"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	assert "github.com/stretchr/testify/assert"
)

func Test_call_001(t *testing.T) {
	assert := assert.New(t)

	cmd := CallCmd{
		Name:  "linear_read_tickets",
		Input: `{"limit":5,"status":"Todo"}`,
		Args:  []string{"limit=10", "search=login bug", "labels=[\"bug\"]", "empty="},
	}
	args, err := cmd.arguments()
	if assert.NoError(err) {
		assert.Equal(map[string]any{
			"limit":  float64(10),
			"status": "Todo",
			"search": "login bug",
			"labels": []any{"bug"},
			"empty":  "",
		}, args)
	}
}

func Test_call_002(t *testing.T) {
	assert := assert.New(t)

	_, err := (&CallCmd{Args: []string{"novalue"}}).arguments()
	assert.ErrorIs(err, scopey.ErrBadParameter)

	_, err = (&CallCmd{Args: []string{"=x"}}).arguments()
	assert.ErrorIs(err, scopey.ErrBadParameter)

	_, err = (&CallCmd{Input: "[1,2]"}).arguments()
	assert.ErrorIs(err, scopey.ErrBadParameter)

	args, err := (&CallCmd{}).arguments()
	assert.NoError(err)
	assert.Empty(args)
}

func Test_call_003(t *testing.T) {
	assert := assert.New(t)

	// A null input is not an argument object
	_, err := (&CallCmd{Input: "null", Args: []string{"limit=10"}}).arguments()
	assert.ErrorIs(err, scopey.ErrBadParameter)
	assert.ErrorContains(err, "JSON object")
}
