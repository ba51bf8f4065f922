package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		arch       string
		numClasses int
		wantErr    bool
	}{
		{name: "resnet50", arch: "resnet50", numClasses: 10},
		{name: "case insensitive", arch: "ResNet50", numClasses: 2},
		{name: "simple cnn", arch: "simple", numClasses: 10},
		{name: "vgg16", arch: "vgg16", numClasses: 5},
		{name: "mobilenetv2", arch: "mobilenetv2", numClasses: 3},
		{name: "efficientnetb0", arch: "efficientnetb0", numClasses: 1000},
		{name: "unknown arch", arch: "alexnet", numClasses: 10, wantErr: true},
		{name: "zero classes", arch: "resnet50", numClasses: 0, wantErr: true},
		{name: "negative classes", arch: "resnet50", numClasses: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Build(tt.arch, tt.numClasses)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.numClasses, spec.NumClasses)
			assert.Equal(t, 224, spec.InputSize)
			assert.Equal(t, 3, spec.Channels)
			assert.NotEmpty(t, spec.HiddenUnits)
			assert.Len(t, spec.Dropout, len(spec.HiddenUnits))
		})
	}
}

func TestBuildUnknownArchListsSupported(t *testing.T) {
	_, err := Build("alexnet", 10)
	require.Error(t, err)
	for _, name := range Architectures() {
		assert.Contains(t, err.Error(), name)
	}
}

func TestBuildTransferDefaults(t *testing.T) {
	spec, err := Build("resnet50", 10)
	require.NoError(t, err)
	assert.True(t, spec.FreezeBase)
	assert.True(t, spec.IsTransfer())

	spec, err = Build("resnet50", 10, WithTrainableBase())
	require.NoError(t, err)
	assert.False(t, spec.FreezeBase)

	spec, err = Build("simple", 10)
	require.NoError(t, err)
	assert.False(t, spec.IsTransfer())
}
