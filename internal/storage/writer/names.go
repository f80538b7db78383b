package writer

import (
	"path/filepath"
	"strings"
)

const (
	MainSuffix  = "_main_data.csv"
	TrainSuffix = "_train_data.csv"
	TestSuffix  = "_test_data.csv"
)

// Names holds the three file paths of one saved dataset
type Names struct {
	Main  string
	Train string
	Test  string
}

// FileNames derives the main/train/test paths from an explicit base path.
// Any extension on base is dropped first, so "out/abc.csv" gives
// "out/abc_main_data.csv".
func FileNames(base string) Names {
	return StemNames(StripExt(base))
}

// StemNames appends the three suffixes to stem as is
func StemNames(stem string) Names {
	return Names{
		Main:  stem + MainSuffix,
		Train: stem + TrainSuffix,
		Test:  stem + TestSuffix,
	}
}

// StripExt removes the extension of the last path element, if any
func StripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
