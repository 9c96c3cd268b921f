package main

import (
	cmd "github.com/getzep/nerlog/cmd/nerlog"
	"github.com/getzep/nerlog/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting nerlog")
	cmd.Execute()
}
