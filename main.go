package main

import "github.com/ingo-eichhorst/pyflyby/cmd"

func main() {
	cmd.Execute()
}
