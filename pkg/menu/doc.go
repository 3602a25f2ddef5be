// Package menu holds the admin menu tree each plugin module contributes. The
// module index page renders the menus a module registered here.
package menu
