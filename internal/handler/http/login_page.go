package http

import (
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

var loginTemplate = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="csrf-token" content="{{.CSRFToken}}">
<title>Sign in</title>
</head>
<body>
<main id="unified-login" data-passkeys="{{.Passkeys}}"></main>
</body>
</html>
`))

// loginPage serves the shell page of the unified login. Clients without a
// configured CSRF token scrape it from here.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	err := loginTemplate.Execute(w, struct {
		CSRFToken string
		Passkeys  bool
	}{h.csrfToken, h.services.PasskeyService != nil})
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.loginPage").Msg("failed to render login page")
	}
}
