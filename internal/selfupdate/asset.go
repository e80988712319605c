package selfupdate

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strings"
)

const binaryName = "vatly"

// Platform is a GOOS/GOARCH pair a release ships an archive for.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string { return p.OS + "/" + p.Arch }

// Platforms lists the builds published with every vatly release.
var Platforms = []Platform{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
	{"windows", "amd64"},
}

func (p Platform) supported() bool { return slices.Contains(Platforms, p) }

func (p Platform) executable() string {
	if p.OS == "windows" {
		return binaryName + ".exe"
	}
	return binaryName
}

// archiveName is the release asset holding the binary for p, e.g.
// vatly_1.4.0_linux_amd64.tar.gz. Windows builds ship as zip.
func archiveName(tag string, p Platform) (string, error) {
	if !p.supported() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	ext := ".tar.gz"
	if p.OS == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), p.OS, p.Arch, ext), nil
}

// checksumsName is the sha256 manifest published next to the archives.
func checksumsName(tag string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", binaryName, strings.TrimPrefix(tag, "v"))
}

func (r *release) asset(name string) (releaseAsset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return releaseAsset{}, false
}

// parseChecksums reads "<sha256>  <file>" lines. Binary-mode markers
// ("*file") are accepted and malformed lines skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || len(fields[0]) != 64 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}
