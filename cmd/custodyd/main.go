package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given the node it operates on, stdin, stdout and
// command line arguments except the program name and this command name. It
// is the responsibility of the command function to parse the arguments.
//
// Every command that changes the state is executed as a single message
// signed with the key configured by CUSTODY_KEY. A successful message is
// committed as a new version of the state.
var commands = map[string]func(n *node, input io.Reader, output io.Writer, args []string) error{
	"accounts": cmdAccounts,
	"approve":  cmdApprove,
	"balance":  cmdBalance,
	"create":   cmdCreate,
	"deposit":  cmdDeposit,
	"init":     cmdInit,
	"keys":     cmdKeys,
	"owners":   cmdOwners,
	"request":  cmdRequest,
	"requests": cmdRequests,
	"version":  cmdVersion,
	"wallet":   cmdWallet,
	"withdraw": cmdWithdraw,
}

func init() {
	// serve dispatches to other commands, so it cannot be part of the
	// commands initializer.
	commands["serve"] = cmdServe
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a shared custody ledger.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>] [<args>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := newLogger(os.Stderr, conf.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	n := newNode(conf, logger)
	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	err = run(n, os.Stdin, os.Stdout, os.Args[2:])
	n.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}
