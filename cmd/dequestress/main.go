package main

import (
	"github.com/onflow/concurrent-deque/cmd/dequestress/cmd"
)

func main() {
	cmd.Execute()
}
