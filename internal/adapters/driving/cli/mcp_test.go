package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_NoService(t *testing.T) {
	_, err := execute(t, "mcp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestMCPCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "mcp", "extra")
	require.Error(t, err)
}

func TestMCPCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp"})
	require.NoError(t, err)
	assert.Equal(t, "mcp", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}

func TestNewMCPServer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	server, err := newMCPServer()
	require.NoError(t, err)
	assert.NotNil(t, server)
}
