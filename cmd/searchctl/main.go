package main

import (
	"os"

	"searchd/internal/searchctl"
)

func main() {
	os.Exit(searchctl.Main(os.Args[1:]))
}
