// Package render runs the admin view pipeline: registered decorators mutate a
// view once, then the template engine resolves and renders it.
package render
