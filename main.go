package main

import "github.com/tristendillon/gohb/cmd"

func main() {
	cmd.Execute()
}
