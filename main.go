package main

import "gitscout/cmd"

func main() {
	cmd.Execute()
}
