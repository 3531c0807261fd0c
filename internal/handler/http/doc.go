// Package http is the JSON transport of the reference auth backend.
//
// Every endpoint the client adapter calls lives under /auth/. Requests pass
// through request-id tagging, access logging, gzip and the CSRF check before
// the handlers hand them to the service layer. GET /login serves the page
// whose csrf-token meta tag clients scrape.
package http
