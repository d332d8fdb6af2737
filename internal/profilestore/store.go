// Package profilestore provides storage interfaces and implementations for
// named word profiles: the bonus, stigma and null word lists used by the
// Edmundson summarizer.
package profilestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/summarizer"
	"github.com/localrivet/edmundson/internal/util"
)

// ErrProfileNotFound is returned when a profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named set of raw, unstemmed word lists.
type Profile struct {
	Name      string    `json:"name" yaml:"name"`
	Bonus     []string  `json:"bonus" yaml:"bonus"`
	Stigma    []string  `json:"stigma" yaml:"stigma"`
	Null      []string  `json:"null" yaml:"null"`
	Revision  string    `json:"revision,omitempty" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// Words returns the word lists of the profile.
func (p Profile) Words() summarizer.WordLists {
	return summarizer.WordLists{
		Bonus:  p.Bonus,
		Stigma: p.Stigma,
		Null:   p.Null,
	}
}

// List returns the words of the given kind.
func (p Profile) List(kind summarizer.WordSetKind) []string {
	switch kind {
	case summarizer.BonusWords:
		return p.Bonus
	case summarizer.StigmaWords:
		return p.Stigma
	case summarizer.NullWords:
		return p.Null
	}
	return nil
}

// Summary describes a stored profile without its words.
type Summary struct {
	Name      string    `json:"name"`
	Revision  string    `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
	Bonus     int       `json:"bonus"`
	Stigma    int       `json:"stigma"`
	Null      int       `json:"null"`
}

// ProfileStore defines the interface for storing and retrieving word profiles.
type ProfileStore interface {
	// Initialize initializes the store with the database path.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Save creates or replaces a profile and returns it as stored.
	Save(profile Profile) (Profile, error)

	// Load returns the named profile.
	Load(name string) (Profile, error)

	// List returns a summary of every profile ordered by name.
	List() ([]Summary, error)

	// Delete removes the named profile.
	Delete(name string) error
}

var kinds = []summarizer.WordSetKind{summarizer.BonusWords, summarizer.StigmaWords, summarizer.NullWords}

// Normalize trims the profile name and every word, drops blank words and
// duplicates, sorts each list and computes the revision.
func Normalize(p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, errortypes.ValidationError(
			errors.New("profile name is empty"),
			"invalid word profile",
		)
	}

	p.Bonus = normalizeWords(p.Bonus)
	p.Stigma = normalizeWords(p.Stigma)
	p.Null = normalizeWords(p.Null)
	p.Revision = Revision(p)
	return p, nil
}

// Revision fingerprints the word lists of a profile. The name is not part
// of the revision so a copied profile keeps the same revision. Every part is
// tagged with its kind so words cannot be mistaken for list boundaries.
func Revision(p Profile) string {
	parts := make([]string, 0, len(p.Bonus)+len(p.Stigma)+len(p.Null)+len(kinds))
	for _, kind := range kinds {
		words := p.List(kind)
		parts = append(parts, string(kind)+"\x00"+strconv.Itoa(len(words)))
		for _, w := range words {
			parts = append(parts, string(kind)+"\x00"+w)
		}
	}
	return util.Fingerprint(parts...)
}

func normalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// LoadProfileFile reads a profile from a YAML or JSON file. A profile without
// a name is named after the file.
func LoadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errortypes.ConfigError(err, "failed to read word profile file").WithField("path", path)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errortypes.ConfigError(
			fmt.Errorf("failed to parse %s: %w", path, err),
			"invalid word profile file",
		).WithField("path", path)
	}

	if strings.TrimSpace(p.Name) == "" {
		p.Name = profileNameFromPath(path)
	}
	return Normalize(p)
}

func profileNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
