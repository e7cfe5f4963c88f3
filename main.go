package main

import "github.com/lepinkainen/bibliotheca/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
