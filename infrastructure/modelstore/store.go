package modelstore

import (
	"encoding/gob"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/fincoach/fincoach-core/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when a requested artifact does not exist on
// disk. Callers decide whether that is a hard error (forecasting) or a
// graceful degradation (recommendations).
var ErrNotFound = errors.New("model artifact not found")

// Store persists trained model artifacts as opaque blobs on the local
// filesystem. Every write goes to a uniquely named temporary file first
// and is then renamed over the target, so concurrent readers either see
// the previous artifact or the new one, never a partial write.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating model store directory")
	}
	return &Store{dir: dir}, nil
}

// SaveGob gob-encodes the value and atomically installs it under name.
func (s *Store) SaveGob(name string, value any) error {
	return s.writeAtomic(name, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(value)
	})
}

// LoadGob decodes the named artifact into out. Returns ErrNotFound when
// the artifact has never been written.
func (s *Store) LoadGob(name string, out any) error {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "opening artifact %s", name)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding artifact %s", name)
	}
	return nil
}

// SaveJSON marshals the value with jsoniter and atomically installs it.
func (s *Store) SaveJSON(name string, value any) error {
	return s.writeAtomic(name, func(f *os.File) error {
		return json.NewEncoder(f).Encode(value)
	})
}

// LoadJSON unmarshals the named artifact into out. Returns ErrNotFound
// when the artifact has never been written.
func (s *Store) LoadJSON(name string, out any) error {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "opening artifact %s", name)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding artifact %s", name)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) writeAtomic(name string, write func(*os.File) error) error {
	suffix, err := utils.GenerateID()
	if err != nil {
		return errors.Wrap(err, "generating temp artifact id")
	}

	tmpPath := s.path(name + ".tmp-" + suffix)
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(err, "creating temp artifact for %s", name)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "encoding artifact %s", name)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "closing temp artifact for %s", name)
	}

	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "installing artifact %s", name)
	}

	return nil
}
