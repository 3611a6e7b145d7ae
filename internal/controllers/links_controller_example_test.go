package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/golang/mock/gomock"

	"github.com/tragikomedia/shortener/internal/config"
	"github.com/tragikomedia/shortener/internal/controllers/mocksctrl"
	"github.com/tragikomedia/shortener/internal/logs"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/services"
)

type mockTestHelper struct{}

func (h *mockTestHelper) Errorf(_ string, _ ...interface{}) {}
func (h *mockTestHelper) Fatalf(_ string, _ ...interface{}) {}

// ExampleLinksController_Create создание анонимной ссылки.
func ExampleLinksController_Create() {
	h := new(mockTestHelper)
	ctrl := gomock.NewController(h)
	defer ctrl.Finish()
	mockLinks := mocksctrl.NewMockLinkService(ctrl)

	router := SetupRouter(RouterParams{
		LinkService: mockLinks,
		UserService: mocksctrl.NewMockUserService(ctrl),
		AppConf: config.Config{
			ServerAddress: ":80",
			JWTSecret:     "secret",
		},
		Logger: logs.MustNew(logs.WithLevel(string(logs.LevelTypeError))),
	})

	mockLinks.EXPECT().
		Create(gomock.Any(), services.CreateLinkParams{RawURL: "example.com"}).
		Return(&models.Link{Code: "aB3dE9z", TargetURL: "example.com"}, nil).Times(1)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"url":"example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Response: %s\n", w.Body.String())

	// Output:
	// Status: 201
	// Response: {"uri":"aB3dE9z"}
}

// ExampleLinksController_Redirect переход по короткой ссылке.
func ExampleLinksController_Redirect() {
	h := new(mockTestHelper)
	ctrl := gomock.NewController(h)
	defer ctrl.Finish()
	mockLinks := mocksctrl.NewMockLinkService(ctrl)

	router := SetupRouter(RouterParams{
		LinkService: mockLinks,
		UserService: mocksctrl.NewMockUserService(ctrl),
		AppConf:     config.Config{JWTSecret: "secret"},
		Logger:      logs.MustNew(logs.WithLevel(string(logs.LevelTypeError))),
	})

	link := &models.Link{Code: "aB3dE9z", TargetURL: "example.com"}
	mockLinks.EXPECT().FindByCode(gomock.Any(), "aB3dE9z").Return(link, nil).Times(1)
	mockLinks.EXPECT().ShouldTrackClicks(link).Return(false).Times(1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/aB3dE9z", nil))

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Location: %s\n", w.Header().Get("Location"))

	// Output:
	// Status: 302
	// Location: https://example.com
}
