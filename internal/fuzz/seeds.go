package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var manifestSeeds = []string{
	"",
	"[package]\nname = \"demo\"\n",
	"[workspace.metadata.marker]\n",
	"[workspace.metadata.marker.lints]\nmarker_lints = \"0.5.0\"\n",
	"[workspace.metadata.marker.lints]\nlocal = { path = \"lints/local\" }\n",
	"[workspace.metadata.marker.lints]\nremote = { git = \"https://example.com/l.git\", rev = \"abc\" }\n",
	"[workspace.metadata.marker.levels]\nFn-Names = \"deny\"\nfn_names = \"warn\"\n",
	"[workspace.metadata.marker]\ndebug-build = true\nrustc-flags = \"-Dwarnings\"\n",
	"[workspace.metadata.marker]\nunknown = 1\n",
	"[workspace.metadata.marker.lints]\nbad = 7\n",
	"[[[",
}

var levelSeeds = []string{
	"",
	"a=allow",
	"fn_names=deny;unit_return=warn",
	"x=forbid;;y=allow",
	"=deny",
	"noequals",
	"x=loud",
	"a=b=c",
}

// addManifestSeeds adds the built-in manifests plus every *.toml file under
// testdata/manifests.
func addManifestSeeds(f *testing.F) {
	for _, s := range manifestSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("testdata", "manifests")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".toml" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(data))
		return nil
	})
	if err != nil {
		f.Fatalf("walk %s: %v", root, err)
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
