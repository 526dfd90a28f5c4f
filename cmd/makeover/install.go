package makeover

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// BinaryName is the file name used for installed copies.
const BinaryName = "makeover"

// installBinary copies the executable at src into dir, replacing any
// previous copy, and returns the installed path.
func installBinary(fs afero.Fs, src, dir string) (string, error) {
	dest := filepath.Join(dir, BinaryName)

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to create install directory %s", dir).
			WithDetail(errors.DetailPath, dir)
	}

	in, err := fs.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to open %s", src).
			WithDetail(errors.DetailPath, src)
	}
	defer func() { _ = in.Close() }()

	// Write next to the destination and rename, so a running copy is never
	// left truncated.
	tmp := dest + ".tmp"
	out, err := fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to create %s", tmp).
			WithDetail(errors.DetailPath, tmp)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fs.Remove(tmp)
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to copy binary to %s", tmp)
	}
	if err := out.Close(); err != nil {
		_ = fs.Remove(tmp)
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to write %s", tmp)
	}
	if err := fs.Rename(tmp, dest); err != nil {
		_ = fs.Remove(tmp)
		return "", errors.Wrapf(err, errors.ErrInstall, "failed to install %s", dest).
			WithDetail(errors.DetailPath, dest)
	}

	log.Info().Str("source", src).Str("destination", dest).Msg("Binary installed")
	return dest, nil
}

// selfInstall installs the running executable into dir.
func selfInstall(dir string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInstall, MsgErrNoExecPath)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return installBinary(afero.NewOsFs(), exe, dir)
}
