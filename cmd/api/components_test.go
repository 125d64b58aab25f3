package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsCommand(t *testing.T) {
	t.Setenv("FEATURE_ENABLE_USER", "true")
	t.Setenv("STARTUP_TASK_ENABLED", "false")
	t.Setenv("HOME_SERVER_ENABLED", "true")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"components"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	names := strings.Fields(out.String())
	assert.Equal(t, []string{
		"config", "logger", "database", "demoRepository", "helloService",
		"user", "helloController", "homeServer",
	}, names)
}

func TestComponentsCommand_WithoutUser(t *testing.T) {
	t.Setenv("FEATURE_ENABLE_USER", "false")
	t.Setenv("STARTUP_TASK_ENABLED", "true")
	t.Setenv("HOME_SERVER_ENABLED", "false")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"components"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	names := strings.Fields(out.String())
	assert.NotContains(t, names, "helloController")
	assert.Contains(t, names, "userRunnable")
}
