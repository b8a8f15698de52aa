package processors

import (
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/transform"
)

func (p *Processors) structuredData(src, dest string) error {
	content, err := p.fs.ReadFile(src)
	if err != nil {
		return err
	}

	out, err := transform.Reserialize(content, p.opts.MinifyStructuredData)
	if err != nil {
		if pe, ok := err.(*errors.PipelineError); ok {
			return pe.WithPath(src)
		}
		return err
	}
	return p.fs.WriteFile(dest, out)
}
