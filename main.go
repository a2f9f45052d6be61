package main

import "github.com/KaramelBytes/moviescope-cli/cmd"

func main() {
	cmd.Execute()
}
