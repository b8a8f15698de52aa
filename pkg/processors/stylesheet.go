package processors

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/assetwatch/pkg/transform"
)

func (p *Processors) stylesheet(ctx context.Context, src, dest string) error {
	content, err := p.fs.ReadFile(src)
	if err != nil {
		return err
	}

	includes := make([]string, 0, len(p.opts.IncludePaths)+1)
	includes = append(includes, filepath.Dir(src))
	includes = append(includes, p.opts.IncludePaths...)

	css, err := p.tr.Stylesheet.CompileStylesheet(ctx, transform.StylesheetRequest{
		Path:         src,
		Source:       string(content),
		IncludePaths: includes,
		Compressed:   p.opts.MinifyStylesheet,
	})
	if err != nil {
		return err
	}

	return p.fs.WriteFile(dest, []byte(p.opts.Header+"\n\n"+css))
}
