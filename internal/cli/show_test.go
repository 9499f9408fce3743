package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowChangesText(t *testing.T) {
	path := writeTestConfig(t, translatableYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "general:")
	assert.Contains(t, output, "overflow_fix: enable")
	assert.Contains(t, output, "activations_quantization_params:")
	assert.Contains(t, output, "num_bits: 8")
	// Groups with no explicit overrides are omitted.
	assert.NotContains(t, output, "weights_quantization_params:")
}

func TestShowChangesJSON(t *testing.T) {
	path := writeTestConfig(t, translatableYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	general, ok := data["general"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "enable", general["overflow_fix"])
}

func TestShowFullTree(t *testing.T) {
	path := writeTestConfig(t, translatableYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--full"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	// The full tree includes groups and fields that were never set.
	assert.Contains(t, output, "weights_quantization_params:")
	assert.Contains(t, output, "narrow_range: <nil>")
	assert.Contains(t, output, "inplace_statistics: true")
}

func TestShowMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/config.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E002") // config.ErrCodeNotFound
}
