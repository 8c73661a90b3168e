package main

import "github.com/gaurav-prasanna/navpipe/cmd"

func main() {
	cmd.Execute()
}
