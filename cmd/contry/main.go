// Command contry is an interactive terminal ledger for shared group expenses.
// All state lives in memory and is lost when the program exits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/contry/internal/ledger"
	"github.com/mmynk/contry/internal/shell"
	"github.com/mmynk/contry/pkg/logging"
)

func main() {
	strict := flag.Bool("strict", false, "reject expenses that name unknown members")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	logging.Setup(*logLevel)

	var opts []ledger.Option
	if *strict {
		opts = append(opts, ledger.WithStrictMembers())
	}

	fmt.Println("Contry Manager. Type help for commands.")
	if err := shell.New(ledger.New(opts...), os.Stdout).Run(os.Stdin); err != nil {
		slog.Error("Shell failed", "error", err)
		os.Exit(1)
	}
}
