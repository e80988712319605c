package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Update errors.
var (
	ErrDevBuild            = errors.New("cannot update a development build")
	ErrAlreadyLatest       = errors.New("already running the latest version")
	ErrChecksum            = errors.New("checksum verification failed")
	ErrNoRelease           = errors.New("release not found")
	ErrMissingAsset        = errors.New("release is missing an asset")
	ErrUnsupportedPlatform = errors.New("no vatly build for this platform")
)

// maxArchiveSize bounds any single download.
const maxArchiveSize = 128 << 20

// Stage names a step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported at each stage of an update.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update installs a vatly release over the running executable. The
// archive for this platform and the release's checksum manifest are
// located through the release's asset list; the archive must match its
// manifest entry before anything on disk is touched.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if canonical(input.CurrentVersion) == "" {
		return ErrDevBuild
	}

	if input.TargetVersion == "" {
		progress(UpdateProgress{Stage: StageCheck, Message: "Checking for the latest vatly release..."})
	} else {
		progress(UpdateProgress{Stage: StageCheck, Message: fmt.Sprintf("Looking up vatly %s...", input.TargetVersion)})
	}
	rel, err := c.fetchRelease(ctx, input.TargetVersion)
	if err != nil {
		return err
	}
	if input.TargetVersion == "" && !newer(rel.TagName, input.CurrentVersion) {
		return ErrAlreadyLatest
	}
	if canonical(rel.TagName) == canonical(input.CurrentVersion) {
		return ErrAlreadyLatest
	}

	name, err := archiveName(rel.TagName, c.platform)
	if err != nil {
		return err
	}
	archive, ok := rel.asset(name)
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrMissingAsset, rel.TagName, name)
	}
	manifest, ok := rel.asset(checksumsName(rel.TagName))
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrMissingAsset, rel.TagName, checksumsName(rel.TagName))
	}

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s...", name)})
	data, err := c.download(ctx, archive)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	sums, err := c.download(ctx, manifest)
	if err != nil {
		return err
	}
	want, ok := parseChecksums(sums)[name]
	if !ok {
		return fmt.Errorf("%w: %s not listed in %s", ErrChecksum, name, manifest.Name)
	}
	if err := verifyChecksum(data, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageExtract, Message: "Unpacking..."})
	binary, err := extractBinary(data, name, c.platform.executable())
	if err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate vatly executable: %w", err)
	}
	if err := install(binary, target); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("vatly %s installed.", rel.TagName)})
	return nil
}

func (c *Checker) download(ctx context.Context, a releaseAsset) ([]byte, error) {
	if a.Size > maxArchiveSize {
		return nil, fmt.Errorf("download %s: %d bytes exceeds limit", a.Name, a.Size)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.DownloadURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", a.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d", a.Name, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", a.Name, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("download %s: exceeds %d bytes", a.Name, maxArchiveSize)
	}
	return data, nil
}
