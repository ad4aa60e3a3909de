package main

import (
	"os"

	"github.com/DaniloReis10/TarifadorTest-sub000/cmd/cli/cmd"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
