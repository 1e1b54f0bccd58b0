package view

import (
	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Expression fields compile once at view construction and run per render
// against the source object, so views stay cheap to evaluate and invalid
// expressions fail at startup rather than mid-request.

func compileExpr(expression string) (*vm.Program, error) {
	if expression == "" {
		return nil, errors.New("expression must not be empty")
	}
	program, err := exprlang.Compile(expression)
	if err != nil {
		return nil, errors.Wrap(err, "compiling expression")
	}
	return program, nil
}

func runExpr(program *vm.Program, src any) (any, error) {
	result, err := exprlang.Run(program, src)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating expression")
	}
	return result, nil
}
