package main

import (
	"github.com/wordarena/wordarena-go/internal/cli"
)

func main() {
	cli.Execute()
}
