package main

import (
	"github.com/0nyxlabs/merchanding/cmd"
)

func main() {
	cmd.Start()
}
