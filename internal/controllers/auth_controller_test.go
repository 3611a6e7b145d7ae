package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/tragikomedia/shortener/internal/config"
	"github.com/tragikomedia/shortener/internal/controllers/mocksctrl"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/tokens"
)

var tokenInPage = regexp.MustCompile(`token:\s*"([^"]+)"`)

// newProviderServer поднимает фейкового провайдера с эндпоинтами токена и профиля.
func newProviderServer(t *testing.T, profileStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(profileStatus)
		_, _ = w.Write([]byte(`{"sub":"07zglossie","name":"Borewicz"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *OAuthProvider {
	return &OAuthProvider{
		Name: ProviderGoogle,
		Config: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:   srv.URL + "/auth",
				TokenURL:  srv.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: "http://short.test/auth/google/callback",
		},
		ProfileURL:   srv.URL + "/me",
		parseProfile: parseGoogleProfile,
	}
}

func newAuthRouter(t *testing.T, users UserService, provider *OAuthProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	return SetupRouter(RouterParams{
		LinkService: mocksctrl.NewMockLinkService(ctrl),
		UserService: users,
		Providers:   []*OAuthProvider{provider},
		AppConf:     config.Config{JWTSecret: "secret", ClientURL: "https://client.test"},
		Logger:      zap.NewNop(),
	})
}

func callback(router *gin.Engine, query url.Values, state string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?"+query.Encode(), nil)
	if state != "" {
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK)
	router := newAuthRouter(t, mocksctrl.NewMockUserService(gomock.NewController(t)), newTestProvider(srv))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location.String(), srv.URL+"/auth?"))

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == oauthStateCookie {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.True(t, stateCookie.HttpOnly)
	assert.Equal(t, stateCookie.Value, location.Query().Get("state"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthController_Callback(t *testing.T) {
	t.Run("issues token", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusOK)
		users := mocksctrl.NewMockUserService(gomock.NewController(t))
		users.EXPECT().
			FindOrCreate(gomock.Any(), ProviderGoogle, "07zglossie", "Borewicz").
			Return(&models.User{ID: "user-1", Name: "Borewicz"}, nil)
		router := newAuthRouter(t, users, newTestProvider(srv))

		w := callback(router, url.Values{"state": {"s1"}, "code": {"good-code"}}, "s1")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "client.test")
		m := tokenInPage.FindStringSubmatch(w.Body.String())
		require.Len(t, m, 2)
		claims, err := tokens.ValidateUserJWT(m[1], []byte("secret"))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.ID)
		assert.Equal(t, "Borewicz", claims.Name)
	})

	failures := []struct {
		name          string
		profileStatus int
		query         url.Values
		cookie        string
	}{
		{name: "state mismatch", profileStatus: http.StatusOK, query: url.Values{"state": {"s1"}, "code": {"good-code"}}, cookie: "other"},
		{name: "no state cookie", profileStatus: http.StatusOK, query: url.Values{"state": {"s1"}, "code": {"good-code"}}},
		{name: "access denied", profileStatus: http.StatusOK, query: url.Values{"state": {"s1"}, "error": {"access_denied"}}, cookie: "s1"},
		{name: "bad code", profileStatus: http.StatusOK, query: url.Values{"state": {"s1"}, "code": {"bad-code"}}, cookie: "s1"},
		{name: "profile unavailable", profileStatus: http.StatusBadGateway, query: url.Values{"state": {"s1"}, "code": {"good-code"}}, cookie: "s1"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProviderServer(t, tt.profileStatus)
			router := newAuthRouter(t, mocksctrl.NewMockUserService(gomock.NewController(t)), newTestProvider(srv))

			w := callback(router, tt.query, tt.cookie)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, strings.HasPrefix(w.Body.String(), "<!DOCTYPE"))
		})
	}
}

func TestParseProfiles(t *testing.T) {
	id, name, err := parseFacebookProfile([]byte(`{"id":"123","name":"Jan Kowalski"}`))
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, "Jan Kowalski", name)

	_, _, err = parseGoogleProfile([]byte(`not json`))
	assert.Error(t, err)
}

func TestProviderCallbackURL(t *testing.T) {
	public, err := url.Parse("https://sho.rt")
	require.NoError(t, err)
	assert.Equal(t, "https://sho.rt/auth/facebook/callback", NewFacebookProvider("id", "secret", public).Config.RedirectURL)
	assert.Equal(t, "/auth/google/callback", NewGoogleProvider("id", "secret", nil).Config.RedirectURL)
}
