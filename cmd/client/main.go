package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const defaultAddr = "localhost:12345"

var addr = flag.String("addr", defaultAddr, "the server address")

func main() {
	flag.Parse()

	target := *addr
	if flag.NArg() > 0 {
		target = flag.Arg(0)
	}

	conn, err := net.Dial("tcp", target)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect")
	}
	defer conn.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(formatLine(scanner.Text()))
			if interactive && strings.HasPrefix(scanner.Text(), "PROMPT") {
				fmt.Print("You> ")
			}
		}

		pterm.Info.Println("Disconnected from server")
		os.Exit(0)
	}()

	input := bufio.NewScanner(os.Stdin)
	for input.Scan() {
		line := strings.TrimSpace(input.Text())
		if isExit(line) {
			return
		}

		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			logrus.WithError(err).Error("could not send")
			return
		}
	}
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit":
		return true
	}

	return false
}
