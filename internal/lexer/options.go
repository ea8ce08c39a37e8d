package lexer

import (
	"momo/internal/diag"
	"momo/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда логи игнорируем
}

func (lx *Lexer) info(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevInfo, sp, msg, nil)
	}
}
