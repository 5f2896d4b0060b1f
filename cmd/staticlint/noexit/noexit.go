// Package noexit запрещает завершать процесс из функции main пакета main
// в обход отложенных вызовов: os.Exit, log.Fatal* и Logger.Fatal* из zap.
package noexit

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "noexit",
	Doc:  "запрещает os.Exit, log.Fatal и zap Fatal в функции main пакета main",
	Run:  run,
}

// forbidden — пакет -> запрещённые функции
var forbidden = map[string]map[string]bool{
	"os":  {"Exit": true},
	"log": {"Fatal": true, "Fatalf": true, "Fatalln": true},
}

const zapPath = "go.uber.org/zap"

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}

				if name, bad := forbiddenCall(pass, sel); bad {
					pass.Reportf(call.Pos(), "вызов %s в main запрещён: отложенные вызовы не выполнятся, используйте return из main", name)
				}
				return true
			})
		}
	}
	return nil, nil
}

func forbiddenCall(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || obj.Pkg() == nil {
		return "", false
	}

	path := obj.Pkg().Path()
	if funcs, ok := forbidden[path]; ok && funcs[obj.Name()] {
		sig, _ := obj.Type().(*types.Signature)
		if sig != nil && sig.Recv() == nil {
			return path + "." + obj.Name(), true
		}
	}

	if path == zapPath && obj.Name() == "Fatal" {
		return "zap Fatal", true
	}
	return "", false
}
