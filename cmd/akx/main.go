package main

import (
	"os"

	"github.com/arthrokinetix/akx-engine/internal/interfaces/cli"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
