// Package config loads lockweak.toml.
//
// The file is optional: Discover walks up from a directory and returns
// ErrNoConfig when nothing is found, callers then use Default().
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"lockweak/internal/driver"
	"lockweak/internal/expand"
	"lockweak/internal/format"
)

// FileName is the config file looked up by Discover.
const FileName = "lockweak.toml"

// ErrNoConfig is returned by Discover when no config file exists up to the root.
var ErrNoConfig = errors.New("no " + FileName + " found")

type Config struct {
	// Requires: ограничение на версию утилиты, например ">= 0.1.0, < 1.0.0".
	Requires string       `toml:"requires,omitempty"`
	Names    NamesConfig  `toml:"names"`
	Expand   ExpandConfig `toml:"expand"`
	Cache    CacheConfig  `toml:"cache"`

	// Path and Root are set by Load, not read from the file.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type NamesConfig struct {
	Locked   string `toml:"locked"`
	Register string `toml:"register"`
	Wrapper  string `toml:"wrapper"`
	Lock     string `toml:"lock"`
}

type ExpandConfig struct {
	// Extension: "always" или "when-used"
	Extension string `toml:"extension"`
	// Indent пустой: отступ определяется по файлу
	Indent  string   `toml:"indent"`
	Jobs    int      `toml:"jobs"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	names := expand.DefaultNames()
	return Config{
		Names: NamesConfig{
			Locked:   names.Locked,
			Register: names.Register,
			Wrapper:  names.Wrapper,
			Lock:     names.Lock,
		},
		Expand: ExpandConfig{
			Extension: expand.ExtensionAlways.String(),
			Include:   append([]string(nil), driver.DefaultExtensions...),
		},
	}
}

// Discover ищет lockweak.toml от startDir вверх до корня.
func Discover(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// Load decodes path over Default() and validates it against toolVersion.
func Load(path, toolVersion string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	for _, key := range [][]string{{"names", "locked"}, {"names", "register"}, {"names", "wrapper"}, {"names", "lock"}} {
		if meta.IsDefined(key...) && strings.TrimSpace(cfg.nameFor(key[1])) == "" {
			return Config{}, fmt.Errorf("%s: [%s].%s must not be empty", path, key[0], key[1])
		}
	}
	if meta.IsDefined("expand", "include") && len(cfg.Expand.Include) == 0 {
		return Config{}, fmt.Errorf("%s: [expand].include must list at least one suffix", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.Path = abs
	cfg.Root = filepath.Dir(abs)
	if err := cfg.Validate(toolVersion); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault: explicit path wins, иначе Discover от dir; отсутствие файла не ошибка.
func LoadOrDefault(explicit, dir, toolVersion string) (Config, error) {
	path := explicit
	if path == "" {
		found, err := Discover(dir)
		if errors.Is(err, ErrNoConfig) {
			return Default(), nil
		}
		if err != nil {
			return Config{}, err
		}
		path = found
	}
	return Load(path, toolVersion)
}

func (c Config) nameFor(key string) string {
	switch key {
	case "locked":
		return c.Names.Locked
	case "register":
		return c.Names.Register
	case "wrapper":
		return c.Names.Wrapper
	case "lock":
		return c.Names.Lock
	}
	return ""
}

// Validate checks names, policy, jobs and the `requires` constraint.
func (c Config) Validate(toolVersion string) error {
	for _, key := range []string{"locked", "register", "wrapper", "lock"} {
		if name := c.nameFor(key); !isIdentifier(name) {
			return fmt.Errorf("[names].%s: %q is not an identifier", key, name)
		}
	}
	if _, ok := expand.ParseExtensionPolicy(c.Expand.Extension); !ok {
		return fmt.Errorf("[expand].extension: %q (expected always|when-used)", c.Expand.Extension)
	}
	if strings.Trim(c.Expand.Indent, " \t") != "" {
		return fmt.Errorf("[expand].indent: only spaces and tabs are allowed")
	}
	if c.Expand.Jobs < 0 {
		return fmt.Errorf("[expand].jobs: must be >= 0")
	}
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("requires: %w", err)
	}
	v, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("tool version %q: %w", toolVersion, err)
	}
	// пре-релизы (-dev) сравниваем по ядру версии
	if v.Prerelease() != "" {
		if stripped, err := v.SetPrerelease(""); err == nil {
			v = &stripped
		}
	}
	if ok, errs := constraint.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("lockweak %s does not satisfy requires %q: %s", toolVersion, c.Requires, strings.Join(msgs, "; "))
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r > 0x7f:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ExpandNames maps the [names] table onto expand.Names.
func (c Config) ExpandNames() expand.Names {
	return expand.Names{
		Locked:   c.Names.Locked,
		Register: c.Names.Register,
		Wrapper:  c.Names.Wrapper,
		Lock:     c.Names.Lock,
	}
}

// DriverOptions builds driver options; the cache is opened by the caller.
func (c Config) DriverOptions() driver.Options {
	policy, _ := expand.ParseExtensionPolicy(c.Expand.Extension)
	return driver.Options{
		Names:      c.ExpandNames(),
		Policy:     policy,
		Format:     format.Options{Indent: c.Expand.Indent},
		Jobs:       c.Expand.Jobs,
		Extensions: c.Expand.Include,
		Exclude:    c.Expand.Exclude,
	}
}

// CacheDir resolves [cache].dir relative to the config root.
func (c Config) CacheDir() string {
	if c.Cache.Dir == "" || filepath.IsAbs(c.Cache.Dir) || c.Root == "" {
		return c.Cache.Dir
	}
	return filepath.Join(c.Root, c.Cache.Dir)
}

// Encode renders cfg as TOML, used by `lockweak init`.
func Encode(cfg Config) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# lockweak configuration\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
