package memory

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Seed is the preload file layout: accounts plus documents keyed by collection path and id.
type Seed struct {
	Accounts  []Account                            `koanf:"accounts"`
	Documents map[string]map[string]map[string]any `koanf:"documents"`
}

// LoadSeedFile reads a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	// Collection paths use "/" and never ".", so "." stays a safe key delimiter.
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", path)
	}

	seed := new(Seed)
	if err := k.Unmarshal("", seed); err != nil {
		return nil, errors.Wrapf(err, "unmarshal seed file %s", path)
	}

	return seed, nil
}

// Apply loads the seed's accounts and documents into the backend.
func (s *Seed) Apply(b *Backend) error {
	for _, account := range s.Accounts {
		if _, err := b.AddAccount(account); err != nil {
			return errors.Wrapf(err, "seed account %s", account.Email)
		}
	}
	for path, docs := range s.Documents {
		for id, fields := range docs {
			b.SetDocument(path, id, fields)
		}
	}

	return nil
}
