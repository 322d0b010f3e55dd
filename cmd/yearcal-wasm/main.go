//go:build js && wasm

// Command yearcal-wasm exposes the calendar renderer to JavaScript as
// yearcalGenerate(paramsJSON), which returns the HTML document or throws an
// Error.
package main

import (
	"context"
	"syscall/js"
	"time"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/params"
)

// A panic inside a js.Func stops the Go runtime, so errors travel back as
// Error values and a small JS wrapper throws them.
const throwingWrapper = `return function (paramsJSON) {
	const result = generate(paramsJSON);
	if (result instanceof Error) { throw result; }
	return result;
};`

func render(raw string) (string, error) {
	p, err := params.DecodeJSONRequiringYear([]byte(raw), time.Now())
	if err != nil {
		return "", err
	}
	// built-in rules only, the page may not reach the holiday API
	p.Offline = true
	req, err := params.Resolver{Offline: holidays.Offline{}}.Resolve(context.Background(), p)
	if err != nil {
		return "", err
	}
	return calendar.Generate(req)
}

func generate(this js.Value, args []js.Value) any {
	var raw string
	if len(args) > 0 && args[0].Type() == js.TypeString {
		raw = args[0].String()
	}
	html, err := render(raw)
	if err != nil {
		return js.Global().Get("Error").New(err.Error())
	}
	return html
}

func main() {
	if err := calendar.ValidateTemplate(); err != nil {
		panic(err)
	}
	wrap := js.Global().Get("Function").New("generate", throwingWrapper)
	js.Global().Set("yearcalGenerate", wrap.Invoke(js.FuncOf(generate)))
	select {}
}
