package config

import (
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Marshal renders the configuration in the given format
func (c *Config) Marshal(format string) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatTOML, "":
		out, err = toml.Marshal(c)
	case FormatYAML:
		out, err = yaml.Marshal(c)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format).
			WithDetail("formats", []string{FormatTOML, FormatYAML})
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
	}
	return out, nil
}
