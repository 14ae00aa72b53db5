package site

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// rewriteStylesheet adjusts relative url(...) references in the stylesheet so
// they resolve from where the sheet is served (css/ below the site root)
// instead of where the source file lived. Absolute, rooted and data: URLs are
// left alone. Unquoted references come through as URL tokens, quoted ones as
// a url( function with a string argument.
func rewriteStylesheet(data []byte, prefix string, log *zap.Logger) []byte {
	input := parse.NewInput(bytes.NewReader(data))
	lexer := css.NewLexer(input)

	var out bytes.Buffer
	inURLFunc := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			// includes io.EOF
			return out.Bytes()
		case css.FunctionToken:
			inURLFunc = strings.EqualFold(string(text), "url(")
			out.Write(text)
		case css.StringToken:
			if inURLFunc {
				inURLFunc = false
				quote := string(text[0])
				out.WriteString(quote + rebase(string(text[1:len(text)-1]), prefix, log) + quote)
				continue
			}
			out.Write(text)
		case css.URLToken:
			inner := strings.TrimSuffix(strings.TrimPrefix(string(text), "url("), ")")
			out.WriteString("url(" + rebase(strings.TrimSpace(inner), prefix, log) + ")")
		case css.WhitespaceToken:
			out.Write(text)
		default:
			inURLFunc = false
			out.Write(text)
		}
	}
}

// rebase prepends the prefix to relative references.
func rebase(url, prefix string, log *zap.Logger) string {
	quote := ""
	if len(url) >= 2 && (url[0] == '"' || url[0] == '\'') && url[len(url)-1] == url[0] {
		quote = string(url[0])
		url = url[1 : len(url)-1]
	}
	if url == "" || strings.HasPrefix(url, "/") || strings.HasPrefix(url, "data:") || strings.Contains(url, "://") {
		return quote + url + quote
	}
	log.Debug("Rewriting stylesheet reference", zap.String("url", url))
	return quote + prefix + url + quote
}
