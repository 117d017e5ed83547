// Package mnist loads the MNIST digit dataset for the image
// autoencoder demos. It reads the official IDX binary files (plain or
// gzipped), a Kaggle-style CSV export, or falls back to a small
// embedded synthetic set so the demos run without any downloads.
//
// Images are returned flattened to 784 float32 values normalized to
// [0, 1], the layout the reconstruction models train on.
package mnist

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// ImageSize is the flattened length of one 28x28 digit.
const ImageSize = 28 * 28

// Data holds a set of MNIST images and labels. Labels are carried for
// display; the autoencoder demos train on the images alone.
type Data struct {
	Images [][]float32 // [num_samples][784], values in [0, 1]
	Labels []int32     // [num_samples]
}

// NumSamples returns the total number of samples.
func (d *Data) NumSamples() int {
	return len(d.Images)
}

// Split divides the dataset into train and validation sets.
// validationRatio is the fraction held out, e.g. 0.2 for 20%.
func (d *Data) Split(validationRatio float32) (*Data, *Data) {
	splitIdx := int(float32(d.NumSamples()) * (1.0 - validationRatio))

	return &Data{
			Images: d.Images[:splitIdx],
			Labels: d.Labels[:splitIdx],
		}, &Data{
			Images: d.Images[splitIdx:],
			Labels: d.Labels[splitIdx:],
		}
}

// Load reads the IDX files for the train or test split from dataDir.
// Plain and gzipped (.gz) files are both accepted. maxSamples limits
// how many samples are kept (0 = all).
func Load(dataDir string, train bool, maxSamples int) (*Data, error) {
	imagesFile := "t10k-images-idx3-ubyte"
	labelsFile := "t10k-labels-idx1-ubyte"
	if train {
		imagesFile = "train-images-idx3-ubyte"
		labelsFile = "train-labels-idx1-ubyte"
	}

	images, err := readIDXImages(filepath.Join(dataDir, imagesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read images: %w", err)
	}
	labels, err := readIDXLabels(filepath.Join(dataDir, labelsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	if len(images) != len(labels) {
		return nil, fmt.Errorf("got %d images but %d labels", len(images), len(labels))
	}

	n := len(images)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}

	d := &Data{
		Images: make([][]float32, n),
		Labels: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		d.Images[i] = normalize(images[i])
		d.Labels[i] = int32(labels[i])
	}
	return d, nil
}

// LoadCSV reads a Kaggle-style CSV export:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// maxSamples limits how many rows are kept (0 = all).
func LoadCSV(filename string, maxSamples int) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing header")
	}

	// Skip header row.
	records = records[1:]
	if maxSamples > 0 && len(records) > maxSamples {
		records = records[:maxSamples]
	}

	d := &Data{
		Images: make([][]float32, len(records)),
		Labels: make([]int32, len(records)),
	}
	for i, record := range records {
		if len(record) != ImageSize+1 {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), ImageSize+1)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 || label > 9 {
			return nil, fmt.Errorf("label out of range [0, 9] at row %d: %d", i+1, label)
		}
		d.Labels[i] = int32(label)

		img := make([]float32, ImageSize)
		for j, cell := range record[1:] {
			pixel, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("invalid pixel at row %d col %d: %w", i+1, j, err)
			}
			img[j] = float32(pixel) / 255.0
		}
		d.Images[i] = img
	}
	return d, nil
}

// Embedded returns a small synthetic stand-in for MNIST: for each digit
// class a distinctive stripe pattern with per-sample shifts. It lets
// the demos run end to end without the real files.
func Embedded() *Data {
	const perClass = 20

	d := &Data{
		Images: make([][]float32, 0, 10*perClass),
		Labels: make([]int32, 0, 10*perClass),
	}
	for class := 0; class < 10; class++ {
		for k := 0; k < perClass; k++ {
			d.Images = append(d.Images, stripePattern(class, k))
			d.Labels = append(d.Labels, int32(class))
		}
	}
	return d
}

// stripePattern draws a horizontal band whose position encodes the
// class and a vertical band shifted per sample, with a smooth falloff.
func stripePattern(class, variant int) []float32 {
	img := make([]float32, ImageSize)
	bandRow := 3 + class*2
	bandCol := 3 + (class+variant)%22

	for row := 0; row < 28; row++ {
		for col := 0; col < 28; col++ {
			dr := float64(row - bandRow)
			dc := float64(col - bandCol)
			v := math.Exp(-dr*dr/4) + 0.7*math.Exp(-dc*dc/4)
			if v > 1 {
				v = 1
			}
			img[row*28+col] = float32(v)
		}
	}
	return img
}

func normalize(pixels []byte) []float32 {
	out := make([]float32, len(pixels))
	for i, p := range pixels {
		out[i] = float32(p) / 255.0
	}
	return out
}
