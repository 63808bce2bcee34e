package resolver_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/precedence/constraint"
	"github.com/katalvlaran/precedence/resolver"
)

// ExampleIsValid validates two page updates against the same rules.
func ExampleIsValid() {
	idx := constraint.Build(totalPageRules())

	fmt.Println(resolver.IsValid(idx, []int{75, 47, 61, 53, 29}))
	fmt.Println(resolver.IsValid(idx, []int{75, 97, 47, 61, 53}))

	// Output:
	// true
	// false
}

// ExampleRepairTopological fixes an update that printed 97 too late.
func ExampleRepairTopological() {
	idx := constraint.Build(totalPageRules())

	fixed, err := resolver.RepairTopological(idx, []int{75, 97, 47, 61, 53})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(fixed)

	// Output:
	// [97 75 47 61 53]
}

// ExampleRepairTopological_cycle shows how contradictory rules are reported.
func ExampleRepairTopological_cycle() {
	idx := constraint.Build([]constraint.Pair[string]{
		constraint.P("intro", "body"),
		constraint.P("body", "intro"),
	})

	_, err := resolver.RepairTopological(idx, []string{"body", "intro"})
	var cerr *resolver.CycleError[string]
	if errors.As(err, &cerr) {
		fmt.Println(cerr.Cycle)
	}

	// Output:
	// [body intro]
}
