package main

import (
	"context"
	_ "embed"
	"os"

	"github.com/klabast/wb-services/yearcal/internal/commands"
)

//go:embed static/index.html
var indexHTML []byte

func main() {
	os.Exit(commands.Execute(context.Background(), indexHTML))
}
