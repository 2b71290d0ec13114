package main

import "github.com/chrisuehlinger/csscolor/cmd"

func main() {
	cmd.Execute()
}
