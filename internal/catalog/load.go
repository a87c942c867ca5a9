package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names of a catalog directory.
const (
	FileManifest  = "manifest.json"
	FileImpacts   = "impacts.json"
	FileProcesses = "processes.json"
	FileMaterials = "materials.json"
	FileProducts  = "products.json"
	FileCountries = "countries.json"
	FileDistances = "distances.json"
)

//go:embed data/*.json
var embedded embed.FS

// Default returns the dataset shipped with the binary.
func Default(opts ...Option) (*Snapshot, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, configError(err, "opening embedded dataset")
	}
	return LoadFS(sub, opts...)
}

// LoadDir reads and validates the catalog stored in dir.
func LoadDir(dir string, opts ...Option) (*Snapshot, error) {
	return LoadFS(os.DirFS(dir), opts...)
}

// LoadFS reads and validates the catalog stored at the root of fsys.
func LoadFS(fsys fs.FS, opts ...Option) (*Snapshot, error) {
	data, err := ReadData(fsys)
	if err != nil {
		return nil, err
	}
	return New(data, opts...)
}

// ReadData decodes the catalog files at the root of fsys without validating
// their content.
func ReadData(fsys fs.FS) (Data, error) {
	var data Data
	files := []struct {
		name string
		dst  any
	}{
		{FileManifest, &data.Manifest},
		{FileImpacts, &data.Definitions},
		{FileProcesses, &data.Processes},
		{FileMaterials, &data.Materials},
		{FileProducts, &data.Products},
		{FileCountries, &data.Countries},
		{FileDistances, &data.Distances},
	}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return Data{}, configError(err, "reading %s", f.name)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return Data{}, configError(err, "decoding %s", f.name)
		}
	}
	return data, nil
}

// WriteDir writes data as a catalog directory that LoadDir can read back.
func WriteDir(dir string, data Data) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	files := []struct {
		name string
		src  any
	}{
		{FileManifest, data.Manifest},
		{FileImpacts, data.Definitions},
		{FileProcesses, data.Processes},
		{FileMaterials, data.Materials},
		{FileProducts, data.Products},
		{FileCountries, data.Countries},
		{FileDistances, data.Distances},
	}
	for _, f := range files {
		raw, err := json.MarshalIndent(f.src, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), append(raw, '\n'), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	return nil
}
