package main

import "github.com/ravenmq/raven/cmd"

func main() {
	cmd.Execute()
}
