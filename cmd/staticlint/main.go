// Command staticlint набор статических анализаторов проекта.
//
// Запуск: go run ./cmd/staticlint ./...
//
// Состав:
//   - анализаторы golang.org/x/tools/go/analysis/passes
//   - все SA анализаторы staticcheck
//   - все S анализаторы simple и выбранные ST и QF анализаторы
//   - nodirectosexit запрещает os.Exit в main.main
//   - ginctxescape запрещает передавать *gin.Context в горутины
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// Выбранные анализаторы stylecheck и quickfix.
//
//nolint:gochecknoglobals
var extraChecks = map[string]bool{
	"ST1005": true, // строки ошибок без заглавной буквы и точки
	"ST1008": true, // error последним результатом
	"ST1019": true, // повторный импорт пакета
	"QF1003": true, // if-else цепочка вместо switch
	"QF1008": true, // лишний селектор встроенного поля
}

func collect(src []*lint.Analyzer, keep func(name string) bool) []*analysis.Analyzer {
	var out []*analysis.Analyzer
	for _, v := range src {
		if keep(v.Analyzer.Name) {
			out = append(out, v.Analyzer)
		}
	}
	return out
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
	}

	list = append(list, collect(staticcheck.Analyzers, func(string) bool { return true })...)
	list = append(list, collect(simple.Analyzers, func(string) bool { return true })...)
	list = append(list, collect(stylecheck.Analyzers, func(name string) bool { return extraChecks[name] })...)
	list = append(list, collect(quickfix.Analyzers, func(name string) bool { return extraChecks[name] })...)

	return append(list, NoDirectOsExit, GinContextEscape)
}

func main() {
	multichecker.Main(analyzers()...)
}
