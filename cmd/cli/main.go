// hostgrep - hosts file search tool
//
// hostgrep parses /etc/hosts style files line by line and prints the IP
// address of every host entry matching a pattern.
package main

import (
	"os"

	"github.com/ccollicutt/hostgrep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
