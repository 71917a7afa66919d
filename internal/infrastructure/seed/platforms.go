package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"apkraft/internal/domain/platform"
)

// PlatformFile is the layout of the platform seed file.
type PlatformFile struct {
	Platforms []PlatformEntry `yaml:"platforms"`
}

type PlatformEntry struct {
	Name    string  `yaml:"name"`
	Code    int     `yaml:"code"`
	IconURL *string `yaml:"icon_url"`
}

// PlatformSeeder inserts missing platforms at startup.
type PlatformSeeder interface {
	EnsureSeeded(ctx context.Context, seeds []platform.CreatePlatform) error
}

// ParsePlatforms decodes and validates a platform seed document.
func ParsePlatforms(data []byte) ([]platform.CreatePlatform, error) {
	var doc PlatformFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode platform seed: %w", err)
	}

	seen := make(map[int]bool, len(doc.Platforms))
	out := make([]platform.CreatePlatform, 0, len(doc.Platforms))
	for i, entry := range doc.Platforms {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("platform seed entry %d: name is required", i)
		}
		if entry.Code < 0 || entry.Code > 65535 {
			return nil, fmt.Errorf("platform seed entry %d: code %d out of range", i, entry.Code)
		}
		if seen[entry.Code] {
			return nil, fmt.Errorf("platform seed entry %d: duplicate code %d", i, entry.Code)
		}
		seen[entry.Code] = true
		out = append(out, platform.CreatePlatform{Name: name, Code: entry.Code, IconURL: entry.IconURL})
	}
	return out, nil
}

// SeedPlatforms loads path and inserts every platform whose code is absent. An empty path is a no-op.
func SeedPlatforms(ctx context.Context, path string, seeder PlatformSeeder, log zerolog.Logger) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read platform seed: %w", err)
	}
	seeds, err := ParsePlatforms(data)
	if err != nil {
		return err
	}
	if err := seeder.EnsureSeeded(ctx, seeds); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("platforms", len(seeds)).Msg("platform seed applied")
	return nil
}
