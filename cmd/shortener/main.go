package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/app"
	"github.com/tragikomedia/shortener/internal/bmeta"
	"github.com/tragikomedia/shortener/internal/config"
)

// Задаются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	_ = bmeta.Fprint(os.Stdout, bmeta.Info{Version: buildVersion, Date: buildDate, Commit: buildCommit})

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.Info("Starting server",
		zap.String("address", appConf.ServerAddress),
		zap.Stringer("public_url", appConf.PublicURL),
		zap.String("click_mode", string(appConf.ClickMode)),
		zap.Bool("https", appConf.EnableHTTPS),
	)
	if err := a.Run(); err != nil {
		a.Logger.Fatal("server stopped", zap.Error(err))
	}
}
