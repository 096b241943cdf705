package errors

// Constructors for the failures an install or diff run can stop on.
// Every one records its inputs plus a "reason" detail: the external tool's
// stderr when it ran and failed, or the spawn/IO error text otherwise.

// TapFailed reports that the package manager rejected a tap.
func TapFailed(name, reason string) *DripError {
	return Newf(ErrTapFailed, "cannot install tap '%s': %s", name, reason).
		WithDetail("name", name).
		WithDetail("reason", reason)
}

// FormulaFailed reports that the package manager rejected a formula.
func FormulaFailed(name, reason string) *DripError {
	return Newf(ErrFormulaFailed, "cannot install formula '%s': %s", name, reason).
		WithDetail("name", name).
		WithDetail("reason", reason)
}

// CaskFailed reports that the package manager rejected a cask.
func CaskFailed(name, reason string) *DripError {
	return Newf(ErrCaskFailed, "cannot install cask '%s': %s", name, reason).
		WithDetail("name", name).
		WithDetail("reason", reason)
}

// CommandFailed reports a process that could not be started, or a shell
// command that ran and exited unsuccessfully.
func CommandFailed(cmd, reason string) *DripError {
	return Newf(ErrCommandFailed, "command '%s' failed: %s", cmd, reason).
		WithDetail("cmd", cmd).
		WithDetail("reason", reason)
}

// CreateDirFailed reports a directory that could not be created.
func CreateDirFailed(dir, reason string) *DripError {
	return Newf(ErrDirCreate, "cannot create dir '%s': %s", dir, reason).
		WithDetail("dir", dir).
		WithDetail("reason", reason)
}

// CopyFailed reports a failed file copy.
func CopyFailed(src, dst, reason string) *DripError {
	return Newf(ErrFileCopy, "cannot copy '%s' to '%s': %s", src, dst, reason).
		WithDetail("src", src).
		WithDetail("dst", dst).
		WithDetail("reason", reason)
}

// DownloadFailed reports a fetch that exited unsuccessfully.
func DownloadFailed(url, dst, reason string) *DripError {
	return Newf(ErrDownloadFailed, "cannot download '%s' to '%s': %s", url, dst, reason).
		WithDetail("url", url).
		WithDetail("dst", dst).
		WithDetail("reason", reason)
}

// ReadWriteFailed reports a file that could not be opened or written.
func ReadWriteFailed(path, reason string) *DripError {
	return Newf(ErrReadWrite, "cannot read from or write to '%s': %s", path, reason).
		WithDetail("path", path).
		WithDetail("reason", reason)
}

// Reason returns the "reason" detail of err, or "" when it has none.
func Reason(err error) string {
	if reason, ok := GetErrorDetails(err)["reason"].(string); ok {
		return reason
	}
	return ""
}
