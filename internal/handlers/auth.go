package handlers

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mailsift/mailsift/internal/auth"
	"go.uber.org/zap"
)

var callbackSuccessPage = template.Must(template.New("callback").Parse(`<html>
  <body>
    <script>
      window.opener.postMessage(
        { access_token: {{.AccessToken}} },
        {{.Origin}}
      );
      setTimeout(function () { window.close(); }, 1000);
    </script>
    <h2>Authentication Successful!</h2>
    <p>You may close this window.</p>
  </body>
</html>`))

var callbackFailurePage = template.Must(template.New("callback_error").Parse(`<html>
  <body>
    <h2>Token Exchange Failed</h2>
    <p><strong>Error:</strong> {{.Error}}</p>
    <p>Close this window and try signing in again.</p>
  </body>
</html>`))

// GoogleAuthHandler handles GET /auth/google: redirect to the provider
// consent screen
func GoogleAuthHandler(authService *auth.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, authService.ConsentURL("state-token"))
	}
}

// CallbackHandler handles GET /auth/callback: exchange the authorization
// code for a token and hand it to the opener window. Failures render a
// diagnostic page; there is no retry.
func CallbackHandler(authService *auth.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if oauthErr := c.QueryParam("error"); oauthErr != "" {
			logger.Warn("OAuth consent error", zap.String("error", oauthErr))
			return c.HTML(http.StatusBadRequest, "<h2>OAuth error: "+template.HTMLEscapeString(oauthErr)+"</h2>")
		}

		code := c.QueryParam("code")
		if code == "" {
			return c.HTML(http.StatusBadRequest, "<h2>Missing code parameter</h2>")
		}

		token, err := authService.Exchange(c.Request().Context(), code)
		if err != nil {
			logger.Error("Token exchange failed", zap.Error(err))
			c.Response().WriteHeader(http.StatusInternalServerError)
			return callbackFailurePage.Execute(c.Response(), map[string]string{
				"Error": err.Error(),
			})
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return callbackSuccessPage.Execute(c.Response(), map[string]string{
			"AccessToken": token.AccessToken,
			"Origin":      authService.OpenerOrigin(),
		})
	}
}
