// Package adocconf loads the optional CLI configuration file: chroma style
// choice, default attribute-missing policy, and diagram backend selection.
// This is deliberately separate from ascii.AttributeStore, which holds
// per-document AsciiDoc attributes — adocconf governs
// how the tool behaves, not what the document says.
package adocconf

import (
	"github.com/hesusruiz/vcutils/yaml"

	"github.com/asciidoc-go/adoc/ascii"
)

// Config is the parsed contents of an optional .asciidocrc.yaml file.
type Config struct {
	raw *yaml.YAML
}

// Load parses path as YAML config. A missing path yields an empty Config
// with every accessor falling back to its default.
func Load(path string) (*Config, error) {
	if path == "" {
		empty, _ := yaml.ParseYaml("")
		return &Config{raw: empty}, nil
	}
	y, err := yaml.ParseYamlFile(path)
	if err != nil {
		return nil, err
	}
	return &Config{raw: y}, nil
}

// CodeStyle is the chroma style name used to highlight listing blocks.
func (c *Config) CodeStyle() string {
	return c.raw.String("adoc.codeStyle", "github")
}

// DiagramBackend names the renderer used for the diagram::[] block macro.
// "d2" is the only implemented value.
func (c *Config) DiagramBackend() string {
	return c.raw.String("adoc.diagramBackend", "d2")
}

// AssetsDir is where generated diagram cache files are written.
func (c *Config) AssetsDir() string {
	return c.raw.String("adoc.assetsDir", "builtassets")
}

// MissingAttributePolicy resolves the configured default for unresolved
// {name} references; "warn" and "drop" opt out of the
// leave-literal default.
func (c *Config) MissingAttributePolicy() ascii.MissingPolicy {
	switch c.raw.String("adoc.attributeMissing", "literal") {
	case "warn":
		return ascii.MissingWarn
	case "drop":
		return ascii.MissingDrop
	default:
		return ascii.MissingLeaveLiteral
	}
}
