package processors

import (
	"github.com/arthur-debert/assetwatch/pkg/errors"
)

// markup output carries no header
func (p *Processors) markup(src, dest string) error {
	content, err := p.fs.ReadFile(src)
	if err != nil {
		return err
	}

	out, err := apply(p.opts.MinifyMarkup, string(content), p.tr.Markup.MinifyMarkup)
	if err != nil {
		return errors.Wrap(err, errors.ErrTransformFailure, "cannot minify markup").WithPath(src)
	}
	return p.fs.WriteFile(dest, []byte(out))
}
