// Command worker runs maintenance tasks against the social graph.
package main

import "os"

func main() {
	if err := newRootCmd(connectGraph).Execute(); err != nil {
		os.Exit(1)
	}
}
