package main

import (
	"fmt"
	"os"

	"github.com/indblik/site/internal/cmd"
	"github.com/indblik/site/web/static/assets"
)

func main() {
	if len(os.Args) < 2 {
		cmd.RunServer(assets.FS)
		return
	}

	switch os.Args[1] {
	case "server":
		cmd.RunServer(assets.FS)
	case "check":
		cmd.RunCheck()
	case "help":
		showHelp()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Indblik - practice website")
	fmt.Println("Usage: ./site [command]")
	fmt.Println("\nAvailable commands:")
	fmt.Println("  server  Start the web server (default)")
	fmt.Println("  check   Validate site config and report missing translations")
	fmt.Println("  help    Show this help message")
}
