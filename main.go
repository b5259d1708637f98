package main

import (
	"github.com/ias-lab/pasiphae/cmd"
)

func main() {
	cmd.Execute()
}
