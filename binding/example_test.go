package binding_test

import (
	"fmt"

	"kvbind/binding"
	"kvbind/keypath"
	"kvbind/transform"
)

func ExampleBind() {
	person := keypath.NewModel(map[string]any{"age": 30})
	slider := keypath.NewModel(nil)

	b, err := binding.Bind(binding.To(person), "age", binding.To(slider), "value", binding.Options{
		TwoWay:           true,
		ValueTransformer: transform.Linear(0.01, 0),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(slider.Get("value"))

	_ = slider.Set("value", 0.5)
	fmt.Println(person.Get("age"))

	b.Unbind()
	_ = person.Set("age", 10)
	fmt.Println(slider.Get("value"))

	// Output:
	// 0.3
	// 50
	// 0.5
}
