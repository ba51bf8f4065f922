package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sentiserve/internal/vision"
)

func main() {
	root := &cobra.Command{
		Use:   "imageclass",
		Short: "Image classification tools",
	}
	root.AddCommand(newBuildCmd(), newPredictCmd(), newDatasetCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newBuildCmd() *cobra.Command {
	var (
		arch       string
		numClasses int
		trainable  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve and print a classifier spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []vision.BuildOption
			if trainable {
				opts = append(opts, vision.WithTrainableBase())
			}

			spec, err := vision.Build(arch, numClasses, opts...)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(spec)
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "resnet50",
		"architecture: "+strings.Join(vision.Architectures(), ", "))
	cmd.Flags().IntVar(&numClasses, "num-classes", 0, "number of classification categories")
	cmd.Flags().BoolVar(&trainable, "trainable-base", false, "do not freeze the pre-trained backbone")

	return cmd
}

func newPredictCmd() *cobra.Command {
	var (
		imagePath    string
		modelPath    string
		metadataPath string
		topN         int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify an image with a serialized ONNX model",
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := vision.LoadClassifier(modelPath, metadataPath)
			if err != nil {
				return err
			}
			defer classifier.Close()

			file, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer file.Close()

			img, _, err := image.Decode(file)
			if err != nil {
				return fmt.Errorf("invalid image format, supported: JPEG, PNG: %w", err)
			}

			prediction, err := classifier.PredictImage(img)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Predicted class: %s\n", prediction.Class)
			fmt.Fprintf(out, "Confidence: %.2f%%\n", prediction.Confidence*100)

			fmt.Fprintf(out, "\nTop %d predictions:\n", topN)
			for i, entry := range prediction.Top {
				if i >= topN {
					break
				}
				fmt.Fprintf(out, "  %d. %s: %.2f%%\n", i+1, entry.Class, entry.Score*100)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "path to the image file")
	cmd.Flags().StringVar(&modelPath, "model", "", "path to the ONNX model")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "path to the model metadata JSON")
	cmd.Flags().IntVar(&topN, "top", 5, "number of ranked predictions to print")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("metadata")

	return cmd
}

func newDatasetCmd() *cobra.Command {
	var (
		out        string
		classes    []string
		trainCount int
		valCount   int
		imageSize  int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate a synthetic image dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := vision.GenerateDataset(vision.DatasetConfig{
				Root:       out,
				Classes:    classes,
				TrainCount: trainCount,
				ValCount:   valCount,
				ImageSize:  imageSize,
				Seed:       seed,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Dataset created at: %s\n", out)
			fmt.Fprintf(w, "Train: %v\n", counts.Train)
			fmt.Fprintf(w, "Val: %v\n", counts.Val)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "data", "output directory")
	cmd.Flags().StringSliceVar(&classes, "classes", []string{"classA", "classB"}, "class names")
	cmd.Flags().IntVar(&trainCount, "train-count", 10, "training images per class")
	cmd.Flags().IntVar(&valCount, "val-count", 4, "validation images per class")
	cmd.Flags().IntVar(&imageSize, "image-size", 224, "square image size in pixels")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	return cmd
}
