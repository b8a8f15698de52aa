package processors

import (
	"github.com/arthur-debert/assetwatch/pkg/errors"
)

const strictPrologue = "\"use strict\";"

func (p *Processors) script(src, dest string) error {
	content, err := p.fs.ReadFile(src)
	if err != nil {
		return err
	}

	body, err := apply(p.opts.MinifyScript, string(content), p.tr.Script.MinifyScript)
	if err != nil {
		return errors.Wrap(err, errors.ErrTransformFailure, "cannot minify script").WithPath(src)
	}

	out := strictPrologue + "\n\n" + p.opts.Header + "\n\n" + body
	return p.fs.WriteFile(dest, []byte(out))
}
