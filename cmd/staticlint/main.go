/*
Package staticlint запускает кастомный multichecker, состоящий из следующих анализаторов:

1. Стандартные анализаторы:
  - printf, structtag, errorsas, sortslice, httpresponse, lostcancel, nilness

2. Анализаторы Staticcheck (https://staticcheck.io):
  - Все SA-анализаторы (предупреждения об ошибках)

3. Сторонние анализаторы:
  - asciicheck: запрещает использование не-ASCII символов в идентификаторах

4. Собственный анализатор:
  - noexit: запрещает os.Exit, log.Fatal и zap Fatal внутри main функции пакета main.

Запуск:

	go run ./cmd/staticlint ./...
*/
package main

import (
	"strings"

	"github.com/tdakkota/asciicheck"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/sortslice"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/staticcheck"

	"github.com/issafronov/leadredirect/cmd/staticlint/noexit"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	var result []*analysis.Analyzer
	seen := make(map[string]bool)

	add := func(a *analysis.Analyzer) {
		if !seen[a.Name] {
			result = append(result, a)
			seen[a.Name] = true
		}
	}

	for _, a := range []*analysis.Analyzer{
		printf.Analyzer,
		structtag.Analyzer,
		errorsas.Analyzer,
		sortslice.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		nilness.Analyzer,
	} {
		add(a)
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			add(a.Analyzer)
		}
	}

	add(asciicheck.NewAnalyzer())
	add(noexit.Analyzer)

	return result
}
