package app

import (
	"github.com/goliatone/go-adminview/pkg/controller"
	"github.com/goliatone/go-adminview/pkg/plugin"
)

func reportsModule(plugin.Deps) (plugin.Module, error) {
	return plugin.Module{
		Name: "reports",
		Controllers: []controller.Controller{{
			Name:          "reports.list",
			Feature:       "reports",
			Authenticated: true,
			Routes:        []controller.Route{controller.Page("/reports", "reports/list")},
		}},
	}, nil
}
