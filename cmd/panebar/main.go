package main

import "panebar/cmd/panebar/cmd"

func main() {
	cmd.Execute()
}
