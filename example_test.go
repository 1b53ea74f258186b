package doublecheck_test

import (
	"fmt"

	"github.com/tmc/doublecheck"
)

func Example() {
	g := doublecheck.New()
	props := g.ControlProps(doublecheck.Handlers{
		OnActivate: func(e *doublecheck.ActivateEvent) {
			fmt.Println("deleted, default prevented:", e.DefaultPrevented())
		},
	})

	label := func() string {
		if g.Armed() {
			return "You sure?"
		}
		return "Delete"
	}

	first := &doublecheck.ActivateEvent{}
	props.OnActivate(first)
	fmt.Println(label(), first.DefaultPrevented())

	props.OnActivate(&doublecheck.ActivateEvent{})

	props.OnKeyUp(&doublecheck.KeyEvent{Key: "esc"})
	fmt.Println(label())
	// Output:
	// You sure? true
	// deleted, default prevented: false
	// Delete
}
