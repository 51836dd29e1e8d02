package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand_RequiresVCF(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}

func TestRootCommand_FlagDefaults(t *testing.T) {
	cmd := rootCommand()
	defaults := map[string]string{
		"min-snvs":          "1000",
		"max-missing":       "0.9",
		"bootstrap":         "1000",
		"threshold":         "0.99",
		"threads":           "1",
		"seed":              "0",
		"linkage":           "proportions",
		"replicate-timeout": "0s",
		"plot-width":        "6",
		"plot-height":       "6",
	}
	for name, want := range defaults {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		require.Equal(t, want, f.DefValue, name)
	}
}
