package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/chore/core/args"
	"github.com/opal-lang/chore/core/task"
	"github.com/opal-lang/chore/internal/config"
)

const configShowDoc = `/**
 * Prints the effective configuration and the site derived from it.
 *
 * The configuration is read from $CHORE_CONFIG or ./chore.yaml, with
 * environment overrides applied.
 * @usage chore config:show [--domain=https://example.com]
 */`

const configInitDoc = `/**
 * Writes a new configuration file, asking for each setting.
 *
 * @usage chore config:init [--path=chore.yaml] [--force]
 */`

// ConfigShow prints the loaded configuration as YAML.
type ConfigShow struct {
	task.Base
}

// Defaults accepts --domain, which overrides domain_name for the site.
func (ConfigShow) Defaults() args.Options {
	return args.Options{"domain": args.Null()}
}

type effectiveConfig struct {
	Config *config.Config `yaml:"config"`
	Site   config.Site    `yaml:"site"`
}

// Execute encodes the configuration and site to stdout.
func (ConfigShow) Execute(_ context.Context, env *task.Env, opts args.Options) error {
	site := env.Site
	if domain := opts["domain"].Or(""); domain != "" {
		site = env.Config.Site(domain)
	}

	enc := yaml.NewEncoder(env.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(effectiveConfig{Config: env.Config, Site: site}); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// ConfigInit prompts for settings and writes a configuration file.
type ConfigInit struct {
	task.Base
}

// Defaults accepts --path and --force.
func (ConfigInit) Defaults() args.Options {
	return args.Options{
		"path":  args.Str(config.DefaultPath),
		"force": args.Str("false"),
	}
}

// Execute asks for each setting, starting from the current configuration,
// and writes the result. An existing file is kept unless --force is given.
func (ConfigInit) Execute(_ context.Context, env *task.Env, opts args.Options) error {
	path := opts.String("path")

	if _, err := os.Stat(path); err == nil && !opts.Bool("force") {
		return task.Exit(2, fmt.Errorf("%s already exists; pass --force to overwrite it", path))
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	cfg := *env.Config
	cfg.Logging.Output = append([]string(nil), env.Config.Logging.Output...)

	domain, err := env.Term.Read(fmt.Sprintf("Domain name (%s)", orNone(cfg.DomainName)))
	if err != nil {
		return err
	}
	if domain != "" {
		cfg.DomainName = domain
	}

	cfg.Color, err = env.Term.Read("Color", config.ColorAuto, config.ColorAlways, config.ColorNever)
	if err != nil {
		return err
	}

	level, err := env.Term.Read("Log level", "debug", "info", "warn", "error")
	if err != nil {
		return err
	}
	cfg.Logging.Level = level

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	env.Term.Write("Wrote " + path)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func init() {
	task.Register("config:show", func() task.Task { return ConfigShow{} }, configShowDoc)
	task.Register("config:init", func() task.Task { return ConfigInit{} }, configInitDoc)
}
