package main

import "github.com/philipparndt/cratepack/internal/cmd"

func main() {
	cmd.Parse()
}
