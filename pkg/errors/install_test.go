// pkg/errors/install_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test install/diff failure constructors

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestInstallConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *errors.DripError
		code    errors.ErrorCode
		wantStr string
		details map[string]interface{}
	}{
		{
			name:    "tap",
			err:     errors.TapFailed("homebrew/cask-fonts", "Error: invalid tap"),
			code:    errors.ErrTapFailed,
			wantStr: "[TAP_FAILED] cannot install tap 'homebrew/cask-fonts': Error: invalid tap",
			details: map[string]interface{}{"name": "homebrew/cask-fonts", "reason": "Error: invalid tap"},
		},
		{
			name:    "formula",
			err:     errors.FormulaFailed("fsih", "No available formula"),
			code:    errors.ErrFormulaFailed,
			wantStr: "[FORMULA_FAILED] cannot install formula 'fsih': No available formula",
			details: map[string]interface{}{"name": "fsih", "reason": "No available formula"},
		},
		{
			name:    "cask",
			err:     errors.CaskFailed("kitty", "already installed"),
			code:    errors.ErrCaskFailed,
			wantStr: "[CASK_FAILED] cannot install cask 'kitty': already installed",
		},
		{
			name:    "command",
			err:     errors.CommandFailed("brew tap", "executable file not found in $PATH"),
			code:    errors.ErrCommandFailed,
			wantStr: "[COMMAND_FAILED] command 'brew tap' failed: executable file not found in $PATH",
			details: map[string]interface{}{"cmd": "brew tap"},
		},
		{
			name:    "create_dir",
			err:     errors.CreateDirFailed("/root/x", "permission denied"),
			code:    errors.ErrDirCreate,
			wantStr: "[DIR_CREATE] cannot create dir '/root/x': permission denied",
		},
		{
			name:    "copy",
			err:     errors.CopyFailed("/r/a", "/b", "no such file or directory"),
			code:    errors.ErrFileCopy,
			wantStr: "[FILE_COPY] cannot copy '/r/a' to '/b': no such file or directory",
			details: map[string]interface{}{"src": "/r/a", "dst": "/b"},
		},
		{
			name:    "download",
			err:     errors.DownloadFailed("https://x.test/f", "/tmp/f", "curl: (22) 404"),
			code:    errors.ErrDownloadFailed,
			wantStr: "[DOWNLOAD_FAILED] cannot download 'https://x.test/f' to '/tmp/f': curl: (22) 404",
			details: map[string]interface{}{"url": "https://x.test/f", "dst": "/tmp/f"},
		},
		{
			name:    "read_write",
			err:     errors.ReadWriteFailed("/tmp/rc", "no such file or directory"),
			code:    errors.ErrReadWrite,
			wantStr: "[READ_WRITE] cannot read from or write to '/tmp/rc': no such file or directory",
			details: map[string]interface{}{"path": "/tmp/rc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.wantStr, tt.err.Error())
			assert.True(t, errors.IsErrorCode(tt.err, tt.code))
			for k, v := range tt.details {
				assert.Equal(t, v, tt.err.Details[k], "detail %s", k)
			}
			assert.NotEmpty(t, errors.Reason(tt.err))
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, "boom", errors.Reason(errors.CommandFailed("fish", "boom")))
	assert.Equal(t, "", errors.Reason(stderrors.New("plain")))
	assert.Equal(t, "", errors.Reason(nil))
}
