package main

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

const ginContextType = "*github.com/gin-gonic/gin.Context"

// GinContextEscape запрещает использовать *gin.Context в go-выражениях.
// gin переиспользует контекст после завершения обработчика, поэтому в горутину
// передаются только нужные значения или ctx.Copy().
//
//nolint:gochecknoglobals
var GinContextEscape = &analysis.Analyzer{
	Name: "ginctxescape",
	Doc:  "check that *gin.Context does not escape into goroutines",
	Run:  runGinContextEscape,
}

func runGinContextEscape(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		copies := copiedContexts(pass, file)
		ast.Inspect(file, func(n ast.Node) bool {
			stmt, ok := n.(*ast.GoStmt)
			if !ok {
				return true
			}
			for _, arg := range stmt.Call.Args {
				if isGinContext(pass.TypesInfo.TypeOf(arg)) && !isCopyCall(pass, arg) {
					pass.Reportf(arg.Pos(), "*gin.Context passed to goroutine, use Copy()")
				}
			}
			if lit, isLit := stmt.Call.Fun.(*ast.FuncLit); isLit {
				checkCaptured(pass, lit, copies)
			}
			return true
		})
	}
	return nil, nil //nolint:nilnil
}

// checkCaptured ищет в теле горутины *gin.Context, объявленный снаружи.
func checkCaptured(pass *analysis.Pass, lit *ast.FuncLit, copies map[types.Object]bool) {
	reported := make(map[types.Object]bool)
	ast.Inspect(lit.Body, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		obj, ok := pass.TypesInfo.Uses[ident].(*types.Var)
		if !ok || reported[obj] || copies[obj] || !isGinContext(obj.Type()) {
			return true
		}
		if declaredWithin(obj.Pos(), lit) {
			return true
		}
		reported[obj] = true
		pass.Reportf(ident.Pos(), "*gin.Context %s captured by goroutine, use Copy()", ident.Name)
		return true
	})
}

// copiedContexts переменные, объявленные как x := c.Copy().
func copiedContexts(pass *analysis.Pass, file *ast.File) map[types.Object]bool {
	copies := make(map[types.Object]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignStmt)
		if !ok || assign.Tok != token.DEFINE || len(assign.Lhs) != len(assign.Rhs) {
			return true
		}
		for i, rhs := range assign.Rhs {
			ident, isIdent := assign.Lhs[i].(*ast.Ident)
			if !isIdent || !isCopyCall(pass, rhs) {
				continue
			}
			if obj := pass.TypesInfo.Defs[ident]; obj != nil {
				copies[obj] = true
			}
		}
		return true
	})
	return copies
}

func declaredWithin(pos token.Pos, node ast.Node) bool {
	return pos >= node.Pos() && pos < node.End()
}

func isCopyCall(pass *analysis.Pass, expr ast.Expr) bool {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "Copy" && isGinContext(pass.TypesInfo.TypeOf(sel.X))
}

func isGinContext(t types.Type) bool {
	return t != nil && t.String() == ginContextType
}
