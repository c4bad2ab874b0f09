package store

import (
	"tableflip.dev/dateslicer/pkg/settings"
)

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads the slicer settings, which carry the store path.
func LoadConfig() (Config, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}
	return s, nil
}
