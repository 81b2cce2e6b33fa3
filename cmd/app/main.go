package main

import (
	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/di"
	"github.com/Jaxki97/lussoautostudio/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
