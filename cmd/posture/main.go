package main

import (
	"fmt"
	"os"

	"github.com/girste/posture/cmd/posture/commands"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			commands.PrintVersion()
			os.Exit(0)

		case "audit":
			os.Exit(commands.RunAudit())

		case "watch":
			os.Exit(commands.RunWatch())

		case "serve":
			commands.RunServe()
			os.Exit(0)

		case "verify":
			os.Exit(commands.RunVerify())

		case "help", "--help", "-h":
			commands.PrintHelp()
			os.Exit(0)

		default:
			fmt.Printf("Unknown command: %s\n", os.Args[1])
			commands.PrintHelp()
			os.Exit(1)
		}
	}

	// Default: run the audit
	os.Exit(commands.RunAudit())
}
