package main

import (
	"embed"
	"log"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"amazon_intake_v1_202608/internal/gateway"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	baseURL := os.Getenv("INTAKE_BACKEND_URL")
	if baseURL == "" {
		baseURL = gateway.DefaultBaseURL
	}

	app := NewApp(gateway.NewHTTPGateway(baseURL))

	err := wails.Run(&options.App{
		Title:  "Amazon Research Intake",
		Width:  1100,
		Height: 780,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatalf("wizard failed: %v", err)
	}
}
