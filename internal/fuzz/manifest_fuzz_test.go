package fuzztests

import (
	"errors"
	"testing"

	"marker/internal/config"
)

func FuzzConfigParse(f *testing.F) {
	addManifestSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		cfg, err := config.Parse("/ws/Cargo.toml", input)
		if err != nil {
			var ce *config.Error
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is not a *config.Error", err)
			}
			return
		}
		for i := 1; i < len(cfg.Lints); i++ {
			if cfg.Lints[i-1].Name > cfg.Lints[i].Name {
				t.Fatalf("lint crates out of order: %q before %q", cfg.Lints[i-1].Name, cfg.Lints[i].Name)
			}
		}
	})
}
