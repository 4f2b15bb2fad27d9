package main

import "repoforge/internal/cmd"

func main() {
	cmd.Execute()
}
