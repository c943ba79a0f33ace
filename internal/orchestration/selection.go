package orchestration

import (
	"github.com/agbru/intcalc/internal/config"
	"github.com/agbru/intcalc/internal/toolkit"
)

// GetOperationsToRun resolves a selector into the operations to evaluate.
// The selector is an operation name, a family name (every variant of the
// family), or config.SelectAll (every operation taking argc arguments).
// Operations are returned sorted by name; nil means nothing matched.
func GetOperationsToRun(selector string, argc int, factory toolkit.OperationFactory) []toolkit.Operation {
	if selector == config.SelectAll {
		var ops []toolkit.Operation
		for _, op := range factory.GetAll() {
			if toolkit.Arity(op) == argc {
				ops = append(ops, op)
			}
		}
		return ops
	}
	if op, err := factory.Get(selector); err == nil {
		return []toolkit.Operation{op}
	}
	if ops := factory.Family(selector); len(ops) > 0 {
		return ops
	}
	return nil
}

// Selectors returns every accepted selector besides config.SelectAll:
// operation names followed by the family names that are not also
// operation names.
func Selectors(factory toolkit.OperationFactory) []string {
	names := factory.List()
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, family := range factory.Families() {
		if _, dup := seen[family]; !dup {
			names = append(names, family)
		}
	}
	return names
}
