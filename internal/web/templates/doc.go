// Package templates holds the templ components rendered by the web server.
//
// Edit the .templ files and run `templ generate`; the _templ.go files are generated.
package templates
