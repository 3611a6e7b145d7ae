package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/tragikomedia/shortener/internal/tokens"
)

const (
	ProviderFacebook = "facebook"
	ProviderGoogle   = "google"

	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 600
	profileBodyLimit = 1 << 20
)

// OAuthProvider внешний провайдер входа.
type OAuthProvider struct {
	Name   string
	Config *oauth2.Config
	// ProfileURL адрес профиля, запрашиваемый с токеном доступа
	ProfileURL string
	// parseProfile достает внешний идентификатор и имя из ответа профиля
	parseProfile func(body []byte) (externalID, name string, err error)
}

// NewFacebookProvider провайдер входа через Facebook Graph API.
func NewFacebookProvider(clientID, clientSecret string, publicURL *url.URL) *OAuthProvider {
	return &OAuthProvider{
		Name: ProviderFacebook,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoints.Facebook,
			RedirectURL:  callbackURL(publicURL, ProviderFacebook),
			Scopes:       []string{"public_profile"},
		},
		ProfileURL:   "https://graph.facebook.com/me?fields=id,name",
		parseProfile: parseFacebookProfile,
	}
}

// NewGoogleProvider провайдер входа через Google OAuth 2.0.
func NewGoogleProvider(clientID, clientSecret string, publicURL *url.URL) *OAuthProvider {
	return &OAuthProvider{
		Name: ProviderGoogle,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoints.Google,
			RedirectURL:  callbackURL(publicURL, ProviderGoogle),
			Scopes:       []string{"openid", "profile"},
		},
		ProfileURL:   "https://www.googleapis.com/oauth2/v3/userinfo",
		parseProfile: parseGoogleProfile,
	}
}

func callbackURL(publicURL *url.URL, provider string) string {
	if publicURL == nil {
		return "/auth/" + provider + "/callback"
	}
	return publicURL.JoinPath("auth", provider, "callback").String()
}

func parseFacebookProfile(body []byte) (string, string, error) {
	var p struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return "", "", errors.Wrap(err, "decode facebook profile")
	}
	return p.ID, p.Name, nil
}

func parseGoogleProfile(body []byte) (string, string, error) {
	var p struct {
		Sub  string `json:"sub"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return "", "", errors.Wrap(err, "decode google profile")
	}
	return p.Sub, p.Name, nil
}

// fetchProfile запрашивает профиль пользователя от имени токена.
func (p *OAuthProvider) fetchProfile(ctx context.Context, token *oauth2.Token) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.ProfileURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build profile request: %w", err)
	}
	res, err := p.Config.Client(ctx, token).Do(req)
	if err != nil {
		return "", "", fmt.Errorf("request %s profile: %w", p.Name, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", "", errors.Errorf("%s profile responded %d", p.Name, res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, profileBodyLimit))
	if err != nil {
		return "", "", fmt.Errorf("read %s profile: %w", p.Name, err)
	}
	externalID, name, err := p.parseProfile(body)
	if err != nil {
		return "", "", err
	}
	if externalID == "" {
		return "", "", errors.Errorf("%s profile has no id", p.Name)
	}
	return externalID, name, nil
}

// AuthController вход через внешних провайдеров. После входа выдает JWT клиентскому приложению.
type AuthController struct {
	users     UserService
	providers map[string]*OAuthProvider
	jwtSecret []byte
	clientURL string
}

func NewAuthController(users UserService, jwtSecret []byte, clientURL string, providers ...*OAuthProvider) *AuthController {
	byName := make(map[string]*OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name] = p
	}
	return &AuthController{
		users:     users,
		providers: byName,
		jwtSecret: jwtSecret,
		clientURL: clientURL,
	}
}

// Login обрабатывает GET /auth/:provider. Перенаправляет на страницу входа провайдера.
func (a *AuthController) Login(ctx *gin.Context) {
	p, ok := a.providers[ctx.Param("provider")]
	if !ok {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{"status": http.StatusNotFound, "error": "Unknown provider"})
		return
	}
	state := uuid.NewString()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, state, oauthStateTTL, "/auth/", "", ctx.Request.TLS != nil, true)
	ctx.Redirect(http.StatusTemporaryRedirect, p.Config.AuthCodeURL(state))
}

// Callback обрабатывает GET /auth/:provider/callback.
// Создает пользователя при первом входе и передает токен странице auth.html.
func (a *AuthController) Callback(ctx *gin.Context) {
	p, ok := a.providers[ctx.Param("provider")]
	if !ok {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{"status": http.StatusNotFound, "error": "Unknown provider"})
		return
	}

	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != ctx.Query("state") {
		a.unauthorized(ctx, errors.New("oauth state mismatch"))
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/auth/", "", ctx.Request.TLS != nil, true)

	code := ctx.Query("code")
	if code == "" {
		a.unauthorized(ctx, errors.Errorf("%s callback without code: %s", p.Name, ctx.Query("error")))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*DefaultRequestTimeout)
	defer cancel()

	token, err := p.Config.Exchange(reqCtx, code)
	if err != nil {
		a.unauthorized(ctx, fmt.Errorf("exchange %s code: %w", p.Name, err))
		return
	}
	externalID, name, err := p.fetchProfile(reqCtx, token)
	if err != nil {
		a.unauthorized(ctx, err)
		return
	}

	user, err := a.users.FindOrCreate(reqCtx, p.Name, externalID, name)
	if err != nil {
		renderErrorPage(ctx, err)
		return
	}
	jwt, err := tokens.GenerateUserJWT(user.ID, user.Name, tokens.UserTokenTTL, a.jwtSecret)
	if err != nil {
		renderErrorPage(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "auth.html", gin.H{"token": jwt, "clientURL": a.clientURL})
}

func (a *AuthController) unauthorized(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.HTML(http.StatusUnauthorized, "error.html", gin.H{"status": http.StatusUnauthorized, "error": "Login failed"})
}
