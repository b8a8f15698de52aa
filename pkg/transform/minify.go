package transform

import (
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const (
	scriptMediaType = "application/javascript"
	markupMediaType = "text/html"
)

// Minifier implements ScriptMinifier and MarkupMinifier with tdewolff/minify
type Minifier struct {
	m *minify.M
}

// NewMinifier creates a Minifier. Markup minification keeps attribute
// quotes, document tags and end tags as authored.
func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(scriptMediaType, js.Minify)
	m.Add(markupMediaType, &html.Minifier{
		KeepQuotes:       true,
		KeepDocumentTags: true,
		KeepEndTags:      true,
	})
	return &Minifier{m: m}
}

// MinifyScript implements ScriptMinifier
func (mf *Minifier) MinifyScript(source string) (string, error) {
	out, err := mf.m.String(scriptMediaType, source)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTransformFailure, "script minification failed")
	}
	return out, nil
}

// MinifyMarkup implements MarkupMinifier
func (mf *Minifier) MinifyMarkup(source string) (string, error) {
	out, err := mf.m.String(markupMediaType, source)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTransformFailure, "markup minification failed")
	}
	return out, nil
}
