package tinyjs_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/tinyjs-go/tinyjs/pkg/tinyjs"
)

// Example shows basic usage of the 42TinyJS engine.
func Example() {
	engine, err := tinyjs.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Evaluate(`1 + 2`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result)
	// Output: 3
}

// Example_compile demonstrates compiling once and running multiple times.
func Example_compile() {
	engine, err := tinyjs.New()
	if err != nil {
		log.Fatal(err)
	}

	program, err := engine.Compile(`console.log("hi")`)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := engine.Run(program); err != nil {
		log.Fatal(err)
	}
	if _, err := engine.Run(program); err != nil {
		log.Fatal(err)
	}

	// Output:
	// hi
	// hi
}

// Example_withOutput shows how to capture console output to a custom writer.
func Example_withOutput() {
	var buf bytes.Buffer

	engine, err := tinyjs.New(tinyjs.WithOutput(&buf))
	if err != nil {
		log.Fatal(err)
	}

	if err := engine.Execute(`console.log("captured")`); err != nil {
		log.Fatal(err)
	}

	fmt.Print(buf.String())
	// Output: captured
}

// Example_addNative shows registering a host function callable from script.
func Example_addNative() {
	engine, err := tinyjs.New()
	if err != nil {
		log.Fatal(err)
	}

	engine.AddNative("double", func(this tinyjs.Value, args []tinyjs.Value) (tinyjs.Value, error) {
		return engine.Number(args[0].Float64() * 2), nil
	})

	result, err := engine.Evaluate(`double(21)`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result)
	// Output: 42
}

// Example_catchError demonstrates a thrown TypeError surviving a
// script-level try/catch with its name and message intact.
func Example_catchError() {
	engine, err := tinyjs.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Evaluate(`
		try {
			throw new TypeError("bad value");
		} catch (e) {
			e.name + ":" + e.message;
		}
	`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result)
	// Output: TypeError:bad value
}

// Example_uncaught shows an uncaught throw surfacing as a Go error.
func Example_uncaught() {
	engine, err := tinyjs.New()
	if err != nil {
		log.Fatal(err)
	}

	err = engine.Execute(`throw new RangeError("out of bounds")`)
	fmt.Println(err)
	// Output: RangeError: out of bounds
}
