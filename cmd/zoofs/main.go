package main

import (
	"github.com/zoofs/zoofs/cmd/zoofs/cli"
)

func main() {
	cli.Execute()
}
