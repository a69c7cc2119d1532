// Package server is the display shell of the viewer: it serves rendered
// documents over HTTP and answers the page's IPC messages over a WebSocket.
//
// Routes:
//
//	GET /            open the initial document (or the welcome page) in a new view
//	GET /view/{id}   re-serve an open view
//	GET /ws?view=id  IPC socket of a view
//	GET /open        follow a link clicked in a view
//	GET /health      liveness probe
package server
