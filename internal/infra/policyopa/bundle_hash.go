package policyopa

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// ComputeBundleHashFromPath digests every rego/json/yaml file under the
// bundle directory into one hex hash. The hash identifies the exact
// policy text a verdict was produced under.
func ComputeBundleHashFromPath(bundlePath string) (string, error) {
	return ComputeBundleHashFromFS(os.DirFS(bundlePath), ".")
}

func ComputeBundleHashFromFS(fsys fs.FS, root string) (string, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return fs.SkipDir
			}
			return nil
		}
		switch path.Ext(p) {
		case ".rego", ".json", ".yaml", ".yml":
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(paths)

	digest := sha256.New()
	for _, p := range paths {
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return "", err
		}
		fileSum := sha256.Sum256(content)
		digest.Write([]byte(p))
		digest.Write([]byte{0})
		digest.Write(fileSum[:])
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
