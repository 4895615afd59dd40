// Package site serves the embedded standings page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded site at root /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
