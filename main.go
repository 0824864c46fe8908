package main

import "github.com/notargets/interp/cmd"

func main() {
	cmd.Execute()
}
