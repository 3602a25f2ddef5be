// Package template defines the template renderer seam used by the admin render
// pipeline, together with the resource lookup the view decorators may probe.
package template
