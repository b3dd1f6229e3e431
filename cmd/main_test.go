package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandFlags(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	for _, name := range []string{"setup", "job", "modes", "out", "log-level", "threads", "metrics-addr", "charts", "plots", "bands"} {
		assert.NotNil(t, run.Flags().Lookup(name), name)
	}
}

func TestRunMissingSetup(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"run", "--setup", t.TempDir() + "/missing.yaml", "--log-level", "error"})
	assert.Error(t, root.Execute())
}
