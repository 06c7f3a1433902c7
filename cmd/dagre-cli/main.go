// Command dagre-cli computes layered layouts for directed graphs.
package main

import (
	"github.com/graphlayout/dagre/cmd/dagre-cli/cmd"
)

func main() {
	cmd.Execute()
}
