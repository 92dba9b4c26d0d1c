package dashboard

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML file used to populate a brand-new document.
//
//	best_times: "Tarde (14h-16h)"
//	links:
//	  - house_name: Acme
//	    link: https://acme.example
//	    status: active
//	    bonus: "10%"
type Seed struct {
	BestTimes string     `yaml:"best_times"`
	Links     []SeedLink `yaml:"links"`
}

type SeedLink struct {
	HouseName string                 `yaml:"house_name"`
	Link      string                 `yaml:"link"`
	Status    string                 `yaml:"status"`
	Extra     map[string]interface{} `yaml:",inline"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(path string) (*Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, l := range s.Links {
		if l.HouseName == "" || l.Link == "" || l.Status == "" {
			return nil, fmt.Errorf("seed link %d: house_name, link and status are required", i)
		}
	}
	return &s, nil
}

// Entries converts the seed links into link entries with fresh ids.
func (s *Seed) Entries() ([]LinkEntry, error) {
	out := make([]LinkEntry, 0, len(s.Links))
	for _, sl := range s.Links {
		l := LinkEntry{ID: NewLinkID(), HouseName: sl.HouseName, Link: sl.Link, Status: sl.Status}
		for k, v := range sl.Extra {
			if k == fieldID || k == fieldIsRec {
				continue
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("seed field %q: %w", k, err)
			}
			if l.Extra == nil {
				l.Extra = make(map[string]json.RawMessage)
			}
			l.Extra[k] = raw
		}
		out = append(out, l)
	}
	return out, nil
}
