package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBudget(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRIP_RUNTIME_PATH", t.TempDir())
	t.Setenv("TRIP_HOME_CITY", "Haifa")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"lookup", "budget", "Prague", "4", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		lookupJSON = false
	})

	require.NoError(t, rootCmd.Execute())

	var est core.BudgetEstimate
	require.NoError(t, json.Unmarshal(out.Bytes(), &est))
	assert.Equal(t, "Haifa", est.Origin)
	assert.Equal(t, 830, est.EstimateTotal)
	assert.Equal(t, 747, est.RangeLow)
	assert.Equal(t, 913, est.RangeHigh)
}

func TestLookupBudget_BadDays(t *testing.T) {
	rootCmd.SetArgs([]string{"lookup", "budget", "Prague", "four"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	assert.Error(t, rootCmd.Execute())
}

func TestLookupBudget_DebugFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRIP_RUNTIME_PATH", t.TempDir())

	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"lookup", "budget", "Sofia", "3", "--debug"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		debug = false
		zerolog.SetGlobalLevel(level)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
