package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/citewise/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	// ConfigFileName is the settings file kept in the citewise directory.
	ConfigFileName = "config.toml"

	dirPerm  = 0700
	filePerm = 0600
)

// ConfigStore keeps citewise settings in a TOML file. Callers address
// values with dotted keys such as "search.endpoint"; on disk every dotted
// prefix becomes a table, so the file stays readable when edited by hand.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens the settings file in configDir, creating the
// directory when needed. An empty configDir means ~/.citewise. A missing
// file is not an error; a file that does not parse is.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".citewise")
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path:   filepath.Join(configDir, ConfigFileName),
		values: map[string]any{},
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns key as a string, or "" when unset or not a string.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt returns key as an int. Fractional values are truncated.
func (s *ConfigStore) GetInt(key string) int {
	n, _ := s.number(key)
	return int(n)
}

// GetFloat returns key as a float64. TOML integers are widened, so
// "requests_per_second = 2" reads as 2.0.
func (s *ConfigStore) GetFloat(key string) float64 {
	n, _ := s.number(key)
	return n
}

func (s *ConfigStore) number(key string) (float64, bool) {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Set records value under key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.writeLocked()
}

// Save rewrites the file from the in-memory values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked()
}

func (s *ConfigStore) writeLocked() error {
	out, err := toml.Marshal(nestMap(s.values))
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, filePerm)
}

// Load replaces the in-memory values with the file's contents. The file
// watcher calls it after an external edit.
func (s *ConfigStore) Load() error {
	tree, err := readTOML(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values = flattenMap(tree, "")
	s.mu.Unlock()
	return nil
}

// readTOML decodes path into a nested map. A missing or empty file yields
// an empty map.
func readTOML(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	tree := map[string]any{}
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// nestMap turns dotted keys into nested tables. A key whose prefix is
// already a scalar stays flat.
func nestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]any{}
	for _, key := range keys {
		parts := strings.Split(key, ".")
		table, ok := tableFor(root, parts[:len(parts)-1])
		leaf := parts[len(parts)-1]
		if _, taken := table[leaf]; !ok || taken {
			root[key] = flat[key]
			continue
		}
		table[leaf] = flat[key]
	}
	return root
}

// tableFor walks path below root, creating tables as it goes. It reports
// false when a scalar sits on the path.
func tableFor(root map[string]any, path []string) (map[string]any, bool) {
	table := root
	for _, part := range path {
		next, exists := table[part]
		if !exists {
			child := map[string]any{}
			table[part] = child
			table = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, false
		}
		table = child
	}
	return table, true
}

// flattenMap is the inverse of nestMap: {"search": {"endpoint": x}}
// becomes {"search.endpoint": x}.
func flattenMap(tree map[string]any, prefix string) map[string]any {
	flat := map[string]any{}
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			for ck, cv := range flattenMap(child, key) {
				flat[ck] = cv
			}
			continue
		}
		flat[key] = v
	}
	return flat
}

// Path returns the settings file location.
func (s *ConfigStore) Path() string {
	return s.path
}
