package vision

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDataset(t *testing.T) {
	root := t.TempDir()

	counts, err := GenerateDataset(DatasetConfig{
		Root:       root,
		Classes:    []string{"classA", "classB"},
		TrainCount: 3,
		ValCount:   2,
		ImageSize:  32,
		Seed:       42,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, counts.Train["classA"])
	assert.Equal(t, 2, counts.Val["classB"])

	for _, class := range []string{"classA", "classB"} {
		trainFiles, err := os.ReadDir(filepath.Join(root, "train", class))
		require.NoError(t, err)
		assert.Len(t, trainFiles, 3)

		valFiles, err := os.ReadDir(filepath.Join(root, "val", class))
		require.NoError(t, err)
		assert.Len(t, valFiles, 2)
	}

	// Images must decode and have the requested size.
	file, err := os.Open(filepath.Join(root, "train", "classA", "classA_train_0.png"))
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestGenerateDatasetValidation(t *testing.T) {
	_, err := GenerateDataset(DatasetConfig{Root: t.TempDir()})
	assert.Error(t, err)

	_, err = GenerateDataset(DatasetConfig{
		Root:       t.TempDir(),
		Classes:    []string{"a"},
		TrainCount: -1,
	})
	assert.Error(t, err)
}

func TestGenerateDatasetDeterministic(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	cfg := DatasetConfig{
		Classes:    []string{"classA"},
		TrainCount: 1,
		ValCount:   0,
		ImageSize:  16,
		Seed:       7,
	}

	cfg.Root = first
	_, err := GenerateDataset(cfg)
	require.NoError(t, err)

	cfg.Root = second
	_, err = GenerateDataset(cfg)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "train", "classA", "classA_train_0.png"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "train", "classA", "classA_train_0.png"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
