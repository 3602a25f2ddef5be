package view

import "net/http"

// Decorator mutates a view after the controller produced it and before the
// template is resolved. Decorators never fail the request.
type Decorator interface {
	Decorate(r *http.Request, v *View)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(r *http.Request, v *View)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(r *http.Request, v *View) {
	fn(r, v)
}

// Chain runs decorators in order. Nil entries are skipped.
func Chain(decorators ...Decorator) Decorator {
	list := make([]Decorator, 0, len(decorators))
	for _, d := range decorators {
		if d != nil {
			list = append(list, d)
		}
	}
	return DecoratorFunc(func(r *http.Request, v *View) {
		for _, d := range list {
			d.Decorate(r, v)
		}
	})
}
