package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range Builtin() {
		r.profiles[p.Name] = p
	}
	return r
}

// Add validates p and stores it, replacing any profile of the same name.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[p.Name] = p
	return nil
}

// Get looks a profile up by name.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}

// Names returns every profile name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// File is the on-disk shape of a profile file.
type File struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFile reads extra profiles from a YAML file into the registry. Nothing
// is added unless every profile in the file is valid.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse profile file %s: %w", path, err)
	}
	if len(f.Profiles) == 0 {
		return fmt.Errorf("profile file %s has no profiles", path)
	}
	for _, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, p := range f.Profiles {
		r.profiles[p.Name] = p
	}
	return nil
}

// SaveFile writes profiles as a YAML profile file.
func SaveFile(path string, profiles []Profile) error {
	data, err := yaml.Marshal(File{Profiles: profiles})
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	return nil
}
