package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	fn := withErrorMessage(func(_ *cobra.Command, _ []string) error {
		return cause
	})
	assert.ErrorIs(t, fn(nil, nil), cause)

	fn = withErrorMessage(func(_ *cobra.Command, _ []string) error {
		return nil
	})
	assert.NoError(t, fn(nil, nil))
}

func TestParseRegNum(t *testing.T) {
	tests := []struct {
		msg, input string
		want       int
		hasErr     bool
	}{
		{"plain", "12", 12, false},
		{"spaces", " 7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"text", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, v := range tests {
		res, err := parseRegNum(v.input)
		if v.hasErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, res, v.msg)
	}
}

func TestParseRegNums(t *testing.T) {
	res, err := parseRegNums([]string{"3", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, res)

	res, err = parseRegNums(nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = parseRegNums([]string{"1", "x"})
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		msg, input string
		want       string
		hasErr     bool
	}{
		{"integer", "1285", "1285.00", false},
		{"cents", "500.50", "500.50", false},
		{"negative", "-100", "-100.00", false},
		{"fractions of cents", "10.005", "", true},
		{"zero", "0.00", "", true},
		{"text", "ten", "", true},
	}

	for _, v := range tests {
		res, err := parseAmount(v.input)
		if v.hasErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, res.StringFixed(2), v.msg)
	}
}

func TestParseTime(t *testing.T) {
	before := time.Now()
	res, err := parseTime("")
	require.NoError(t, err)
	assert.False(t, res.Before(before))

	res, err = parseTime("2021-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, res.UTC().Hour())

	_, err = parseTime("2021-03-01")
	assert.Error(t, err)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json", "text", "json"))

	err := checkFormat("xml", "text", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text, json")
}
