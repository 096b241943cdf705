package runner

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireSh(t)

	res, err := New().Run(context.Background(), "sh", "-c", "printf 'a\\nb\\n'")
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "a\nb", res.StdoutText())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)

	res, err := New().Run(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	require.NoError(t, err, "a process that ran is not a spawn failure")
	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "nope", res.StderrText())
}

func TestExecRunner_SpawnFailure(t *testing.T) {
	_, err := New().Run(context.Background(), "drip-test-no-such-binary-xyz")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain", []byte("error: boom\n"), "error: boom"},
		{"crlf", []byte("x\r\n"), "x"},
		{"invalid utf8 replaced", []byte{'b', 'a', 'd', 0xff, 0xfe, '!'}, "bad�!"},
		{"empty", nil, ""},
		{"inner newlines kept", []byte("a\nb\n"), "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.input))
		})
	}
}
