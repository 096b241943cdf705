package postinstall_test

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/filesystem"
	"github.com/arthur-debert/drip/pkg/postinstall"
	"github.com/arthur-debert/drip/pkg/testutil"
	"github.com/arthur-debert/drip/pkg/types"
)

type fixture struct {
	mem    afero.Fs
	runner *testutil.MockRunner
	interp *postinstall.Interpreter
}

func newFixture(t *testing.T, opts postinstall.Options) *fixture {
	t.Helper()
	f := &fixture{mem: afero.NewMemMapFs(), runner: testutil.NewMockRunner()}
	if opts.FS == nil {
		opts.FS = filesystem.NewAferoFS(f.mem)
	}
	opts.Runner = f.runner
	f.interp = postinstall.New(opts)
	return f
}

func TestCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("relative source into new directory", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		require.NoError(t, afero.WriteFile(f.mem, "/recipe/config.fish", []byte("set x 1\n"), 0640))

		err := f.interp.Run(ctx, types.Copy{Source: "config.fish", Destination: "/home/u/.config/fish"}, "/recipe")
		require.NoError(t, err)

		isDir, err := afero.IsDir(f.mem, "/home/u/.config/fish")
		require.NoError(t, err)
		assert.True(t, isDir)

		data, err := afero.ReadFile(f.mem, "/home/u/.config/fish/config.fish")
		require.NoError(t, err)
		assert.Equal(t, "set x 1\n", string(data))

		info, err := f.mem.Stat("/home/u/.config/fish/config.fish")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
		assert.Empty(t, f.runner.Calls())
	})

	t.Run("absolute source ignores base dir", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		require.NoError(t, afero.WriteFile(f.mem, "/elsewhere/init.lua", []byte("--"), 0644))
		require.NoError(t, f.mem.MkdirAll("/home/u/nvim", 0755))

		err := f.interp.Run(ctx, types.Copy{Source: "/elsewhere/init.lua", Destination: "/home/u/nvim"}, "/recipe")
		require.NoError(t, err)

		exists, err := afero.Exists(f.mem, "/home/u/nvim/init.lua")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("existing target is overwritten", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		require.NoError(t, afero.WriteFile(f.mem, "/recipe/a.conf", []byte("new"), 0644))
		require.NoError(t, afero.WriteFile(f.mem, "/dst/a.conf", []byte("old and longer"), 0644))

		require.NoError(t, f.interp.Run(ctx, types.Copy{Source: "a.conf", Destination: "/dst"}, "/recipe"))

		data, err := afero.ReadFile(f.mem, "/dst/a.conf")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("missing source", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})

		err := f.interp.Run(ctx, types.Copy{Source: "nope", Destination: "/dst"}, "/recipe")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileCopy))

		details := errors.GetErrorDetails(err)
		assert.Equal(t, "/recipe/nope", details["src"])
		assert.Equal(t, "/dst", details["dst"])
		assert.Contains(t, err.Error(), "cannot copy '/recipe/nope' to '/dst'")
	})

	t.Run("source is a directory", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		require.NoError(t, f.mem.MkdirAll("/recipe/dir", 0755))

		err := f.interp.Run(ctx, types.Copy{Source: "dir", Destination: "/dst"}, "/recipe")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileCopy))
	})

	t.Run("destination cannot be created", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		f := newFixture(t, postinstall.Options{FS: filesystem.NewAferoFS(afero.NewReadOnlyFs(mem))})

		err := f.interp.Run(ctx, types.Copy{Source: "a", Destination: "/dst"}, "/recipe")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
		assert.Equal(t, "/dst", errors.GetErrorDetails(err)["dir"])
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	step := types.Download{URL: "https://example.com/a.fish", Destination: "/home/u/.config/fish/functions/a.fish"}

	t.Run("invokes fetch tool", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})

		require.NoError(t, f.interp.Run(ctx, step, "/recipe"))
		assert.Equal(t, []string{
			"curl -fsSLo /home/u/.config/fish/functions/a.fish --create-dirs https://example.com/a.fish",
		}, f.runner.Calls())

		isDir, err := afero.IsDir(f.mem, "/home/u/.config/fish/functions")
		require.NoError(t, err)
		assert.True(t, isDir)
	})

	t.Run("custom fetch tool", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{Fetch: "/opt/bin/curl"})

		require.NoError(t, f.interp.Run(ctx, step, ""))
		invs := f.runner.Invocations()
		require.Len(t, invs, 1)
		assert.Equal(t, "/opt/bin/curl", invs[0].Name)
	})

	t.Run("unsuccessful exit", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		f.runner.FailOn("curl", "curl: (22) 404")

		err := f.interp.Run(ctx, step, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDownloadFailed))
		assert.Equal(t, "curl: (22) 404", errors.Reason(err))
		assert.Equal(t, step.URL, errors.GetErrorDetails(err)["url"])
	})

	t.Run("fetch tool missing", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		f.runner.SpawnErrorOn("curl", stderrors.New("executable file not found in $PATH"))

		err := f.interp.Run(ctx, step, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Equal(t, "curl", errors.GetErrorDetails(err)["cmd"])
	})

	t.Run("parent cannot be created", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{FS: filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewMemMapFs()))})

		err := f.interp.Run(ctx, step, "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
		assert.Empty(t, f.runner.Calls())
	})
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("appends text and newline", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		require.NoError(t, afero.WriteFile(f.mem, "/home/u/config.fish", []byte("a\n"), 0644))

		require.NoError(t, f.interp.Run(ctx, types.Append{Text: "hello", Destination: "/home/u/config.fish"}, ""))

		data, err := afero.ReadFile(f.mem, "/home/u/config.fish")
		require.NoError(t, err)
		assert.Equal(t, "a\nhello\n", string(data))
	})

	t.Run("missing file is not created", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})

		err := f.interp.Run(ctx, types.Append{Text: "hello", Destination: "/home/u/missing"}, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrReadWrite))
		assert.Equal(t, "/home/u/missing", errors.GetErrorDetails(err)["path"])

		exists, err := afero.Exists(f.mem, "/home/u/missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()
	step := types.RunCommand{Command: "fisher install jorgebucaran/nvm.fish"}

	t.Run("default shell", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})

		require.NoError(t, f.interp.Run(ctx, step, ""))
		invs := f.runner.Invocations()
		require.Len(t, invs, 1)
		assert.Equal(t, "fish", invs[0].Name)
		assert.Equal(t, []string{"-c", step.Command}, invs[0].Args)
	})

	t.Run("configured shell", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{Shell: "bash"})

		require.NoError(t, f.interp.Run(ctx, step, ""))
		assert.Equal(t, "bash", f.runner.Invocations()[0].Name)
	})

	t.Run("unsuccessful exit", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		f.runner.FailOn("fish", "fisher: unknown command")

		err := f.interp.Run(ctx, step, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Equal(t, step.Command, errors.GetErrorDetails(err)["cmd"])
		assert.Equal(t, "fisher: unknown command", errors.Reason(err))
	})

	t.Run("shell missing", func(t *testing.T) {
		f := newFixture(t, postinstall.Options{})
		f.runner.SpawnErrorOn("fish", stderrors.New("not found"))

		err := f.interp.Run(ctx, step, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Equal(t, "fish", errors.GetErrorDetails(err)["cmd"])
	})
}
