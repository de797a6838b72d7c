package main

import "tagger/cmd/tagger/cmd"

func main() {
	cmd.Execute()
}
