package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

// DatasetConfig drives the synthetic dataset writer. Each class produces
// noisy solid-color images so a classifier has something trivially separable
// to smoke-test against.
type DatasetConfig struct {
	Root       string
	Classes    []string
	TrainCount int
	ValCount   int
	ImageSize  int
	Seed       int64
}

// DatasetCounts reports how many images were written per split and class.
type DatasetCounts struct {
	Train map[string]int
	Val   map[string]int
}

var baseColors = []color.RGBA{
	{R: 200, G: 50, B: 50, A: 255},
	{R: 50, G: 50, B: 200, A: 255},
	{R: 50, G: 200, B: 50, A: 255},
	{R: 200, G: 200, B: 50, A: 255},
	{R: 200, G: 50, B: 200, A: 255},
	{R: 50, G: 200, B: 200, A: 255},
}

// GenerateDataset writes train/<class>/ and val/<class>/ PNG files under the
// configured root. Deterministic for a fixed seed.
func GenerateDataset(cfg DatasetConfig) (DatasetCounts, error) {
	counts := DatasetCounts{
		Train: make(map[string]int),
		Val:   make(map[string]int),
	}

	if len(cfg.Classes) == 0 {
		return counts, fmt.Errorf("at least one class is required")
	}
	if cfg.TrainCount < 0 || cfg.ValCount < 0 {
		return counts, fmt.Errorf("image counts must not be negative")
	}
	if cfg.ImageSize <= 0 {
		cfg.ImageSize = 224
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	for i, class := range cfg.Classes {
		base := baseColors[i%len(baseColors)]

		trainDir := filepath.Join(cfg.Root, "train", class)
		if err := writeClassImages(rng, trainDir, class, "train", base, cfg.TrainCount, cfg.ImageSize); err != nil {
			return counts, err
		}
		counts.Train[class] = cfg.TrainCount

		valDir := filepath.Join(cfg.Root, "val", class)
		if err := writeClassImages(rng, valDir, class, "val", base, cfg.ValCount, cfg.ImageSize); err != nil {
			return counts, err
		}
		counts.Val[class] = cfg.ValCount
	}

	return counts, nil
}

func writeClassImages(rng *rand.Rand, dir, class, split string, base color.RGBA, count, size int) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for i := 0; i < count; i++ {
		img := makeImage(rng, base, size)
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.png", class, split, i))

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	return nil
}

// makeImage fills a square with the base color plus additive channel noise.
func makeImage(rng *rand.Rand, base color.RGBA, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(int(base.R) + rng.Intn(50)),
				G: clampByte(int(base.G) + rng.Intn(50)),
				B: clampByte(int(base.B) + rng.Intn(50)),
				A: 255,
			})
		}
	}
	return img
}

func clampByte(v int) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
