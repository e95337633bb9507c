package main

import "pinboard/cmd"

func main() {
	cmd.Execute()
}
