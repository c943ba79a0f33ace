package toolkit

import "fmt"

// ExampleNewDefaultFactory looks up the variants of a family and evaluates
// them on the same input.
func ExampleNewDefaultFactory() {
	factory := NewDefaultFactory()

	for _, op := range factory.Family(FamilyPower) {
		args := []int32{-2, 3}
		v, _ := op.Evaluate(args)
		fmt.Printf("%s%v = %d (valid: %v)\n", op.Name(), args, v, op.Valid(args))
	}
	// Output:
	// power-iterative[-2 3] = 0 (valid: false)
	// power-recursive[-2 3] = -8 (valid: true)
}
