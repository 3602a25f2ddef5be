// Package view defines the server-side render descriptor handed from
// controllers to the render pipeline, and the decorator seam that mutates it
// before the template is resolved.
package view
